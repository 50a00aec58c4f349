package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/piwi3910/rollcut/internal/model"
)

func TestRunTemplateListEmpty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	if err := runTemplateList(&buf); err != nil {
		t.Fatalf("runTemplateList failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No templates saved yet.") {
		t.Errorf("expected empty-store message:\n%s", buf.String())
	}
}

func TestTemplateLifecycle(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	spec := summarySpec()
	orders := []model.OrderLine{model.NewOrderLine(spec, dec("40"), 6)}
	if err := saveAsTemplate("weekly", orders, nil, model.DefaultSettings()); err != nil {
		t.Fatalf("saveAsTemplate failed: %v", err)
	}

	var buf bytes.Buffer
	if err := runTemplateList(&buf); err != nil {
		t.Fatalf("runTemplateList failed: %v", err)
	}
	if !strings.Contains(buf.String(), "weekly") {
		t.Errorf("list missing template:\n%s", buf.String())
	}

	buf.Reset()
	if err := runTemplateShow(&buf, "weekly"); err != nil {
		t.Fatalf("runTemplateShow failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Orders", "240gsm-18bf-white", "118\" source width"} {
		if !strings.Contains(out, want) {
			t.Errorf("show missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := runTemplateDelete(&buf, "weekly"); err != nil {
		t.Fatalf("runTemplateDelete failed: %v", err)
	}

	buf.Reset()
	if err := runTemplateList(&buf); err != nil {
		t.Fatalf("runTemplateList failed: %v", err)
	}
	if strings.Contains(buf.String(), "weekly") {
		t.Errorf("deleted template still listed:\n%s", buf.String())
	}
}

func TestRunTemplateShowUnknown(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	err := runTemplateShow(&buf, "missing")
	if err == nil || !strings.Contains(err.Error(), "no template named") {
		t.Errorf("expected missing-template error, got %v", err)
	}
}

func TestRunTemplateDeleteUnknown(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	if err := runTemplateDelete(&buf, "missing"); err == nil {
		t.Error("expected error deleting a missing template")
	}
}
