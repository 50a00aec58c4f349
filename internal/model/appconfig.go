package model

import "github.com/shopspring/decimal"

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default planner settings applied to new plans
	DefaultAlgorithm             Algorithm       `json:"default_algorithm"`
	DefaultSourceRollWidth       decimal.Decimal `json:"default_source_roll_width"`
	DefaultMaxRollsPerSourceRoll int             `json:"default_max_rolls_per_source_roll"`
	DefaultAutoAcceptTrim        decimal.Decimal `json:"default_auto_accept_trim"`
	DefaultReusableBandLow       decimal.Decimal `json:"default_reusable_band_low"`
	DefaultReusableBandHigh      decimal.Decimal `json:"default_reusable_band_high"`
	DefaultTrimPolicy            TrimPolicy      `json:"default_trim_policy"`
	DefaultSetupDialect          string          `json:"default_setup_dialect"`

	// Application preferences
	RollsPerJumboSet int      `json:"rolls_per_jumbo_set"` // source rolls yielded by one jumbo set
	RecentPlans      []string `json:"recent_plans"`
	Theme            string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultAlgorithm:             defaults.Algorithm,
		DefaultSourceRollWidth:       defaults.SourceRollWidth,
		DefaultMaxRollsPerSourceRoll: defaults.MaxRollsPerSourceRoll,
		DefaultAutoAcceptTrim:        defaults.AutoAcceptTrim,
		DefaultReusableBandLow:       defaults.ReusableBandLow,
		DefaultReusableBandHigh:      defaults.ReusableBandHigh,
		DefaultTrimPolicy:            defaults.TrimPolicy,
		DefaultSetupDialect:          "Standard",
		RollsPerJumboSet:             3,
		RecentPlans:                  []string{},
		Theme:                        "system",
	}
}

// ApplyToSettings copies the default values from AppConfig into a PlanSettings
// struct. This is used when creating a new plan so it inherits the user's
// saved defaults.
func (c AppConfig) ApplyToSettings(s *PlanSettings) {
	s.Algorithm = c.DefaultAlgorithm
	s.SourceRollWidth = c.DefaultSourceRollWidth
	s.MaxRollsPerSourceRoll = c.DefaultMaxRollsPerSourceRoll
	s.AutoAcceptTrim = c.DefaultAutoAcceptTrim
	s.ReusableBandLow = c.DefaultReusableBandLow
	s.ReusableBandHigh = c.DefaultReusableBandHigh
	s.TrimPolicy = c.DefaultTrimPolicy
}
