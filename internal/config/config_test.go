package config

import (
	"path/filepath"
	"strings"
	"testing"

	"echofinder/internal/echo"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "echofinder.yaml"))
	if err != nil {
		t.Fatalf("missing config must not fail: %v", err)
	}
	if cfg.MinWords != 2 || cfg.MaxWords != 8 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.StripPunctuation {
		t.Fatal("strip_punctuation must default to true")
	}
	if cfg.Policy != string(echo.MaximalSubstring) {
		t.Fatalf("unexpected default policy: %q", cfg.Policy)
	}
}

func TestLoadFromReaderOverridesDefaults(t *testing.T) {
	yaml := `
min_words: 3
max_words: 6
policy: non_overlapping
preset: most_repeated
whitelist: ["Dr.", "Prof."]
`
	cfg, err := LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MinWords != 3 || cfg.MaxWords != 6 {
		t.Fatalf("bounds not applied: %+v", cfg)
	}
	if cfg.Policy != string(echo.NonOverlapping) {
		t.Fatalf("policy not applied: %q", cfg.Policy)
	}
	if len(cfg.Whitelist) != 2 {
		t.Fatalf("whitelist not applied: %v", cfg.Whitelist)
	}
	// Untouched fields keep their defaults.
	if !cfg.StripPunctuation {
		t.Fatal("strip_punctuation default lost")
	}
}

func TestLoadFromReaderRejectsUnknownFields(t *testing.T) {
	if _, err := LoadFromReader(strings.NewReader("min_wordz: 3\n")); err == nil {
		t.Fatal("expected unknown field error")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.MinWords = 0
	cfg.Policy = "sideways"
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "min_words") || !strings.Contains(msg, "policy") {
		t.Fatalf("expected both failures listed, got %q", msg)
	}
}

func TestValidateAllowsInvertedRange(t *testing.T) {
	// min_words > max_words is not an error: the engine produces no
	// candidates for an inverted range.
	cfg := Default()
	cfg.MinWords = 9
	cfg.MaxWords = 3
	if err := Validate(cfg); err != nil {
		t.Fatalf("inverted range must validate: %v", err)
	}
}
