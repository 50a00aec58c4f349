package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if !cfg.DefaultSourceRollWidth.Equal(defaults.SourceRollWidth) {
		t.Errorf("SourceRollWidth mismatch: config=%s settings=%s", cfg.DefaultSourceRollWidth, defaults.SourceRollWidth)
	}
	if cfg.DefaultMaxRollsPerSourceRoll != defaults.MaxRollsPerSourceRoll {
		t.Errorf("MaxRollsPerSourceRoll mismatch: config=%d settings=%d", cfg.DefaultMaxRollsPerSourceRoll, defaults.MaxRollsPerSourceRoll)
	}
	if !cfg.DefaultAutoAcceptTrim.Equal(defaults.AutoAcceptTrim) {
		t.Errorf("AutoAcceptTrim mismatch: config=%s settings=%s", cfg.DefaultAutoAcceptTrim, defaults.AutoAcceptTrim)
	}
	if cfg.DefaultTrimPolicy != defaults.TrimPolicy {
		t.Errorf("TrimPolicy mismatch: config=%s settings=%s", cfg.DefaultTrimPolicy, defaults.TrimPolicy)
	}
	if cfg.RollsPerJumboSet != 3 {
		t.Errorf("expected default 3 rolls per jumbo set, got %d", cfg.RollsPerJumboSet)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected default theme=system, got %s", cfg.Theme)
	}
	if cfg.RecentPlans == nil {
		t.Error("RecentPlans should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultSourceRollWidth = dec("124")
	cfg.DefaultMaxRollsPerSourceRoll = 6
	cfg.DefaultTrimPolicy = TrimPolicyConfirm

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if !s.SourceRollWidth.Equal(dec("124")) {
		t.Errorf("expected SourceRollWidth=124, got %s", s.SourceRollWidth)
	}
	if s.MaxRollsPerSourceRoll != 6 {
		t.Errorf("expected MaxRollsPerSourceRoll=6, got %d", s.MaxRollsPerSourceRoll)
	}
	if s.TrimPolicy != TrimPolicyConfirm {
		t.Errorf("expected TrimPolicy=confirm, got %s", s.TrimPolicy)
	}
}
