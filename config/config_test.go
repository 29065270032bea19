package config

import "testing"

func TestParseTextModeConfig(t *testing.T) {
	doc := []byte(`
text-mode:
  ruler: [80, 120]
  char-map:
    "\t": "→"
  color-map:
    "x": "red"
  display-end-of-line: true
  display-word-wrap: false
`)
	cfg, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.TextMode.Ruler) != 2 || cfg.TextMode.Ruler[0] != 80 || cfg.TextMode.Ruler[1] != 120 {
		t.Fatalf("unexpected ruler: %+v", cfg.TextMode.Ruler)
	}
	if !cfg.TextMode.DisplayEndOfLine {
		t.Fatalf("expected display-end-of-line true")
	}
	if cfg.TextMode.DisplayWordWrap {
		t.Fatalf("expected display-word-wrap false")
	}

	runes := cfg.TextMode.CharMapRunes()
	if runes['\t'] != "→" {
		t.Fatalf("expected tab char-map entry, got %+v", runes)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load("/nonexistent/path/to/config.yaml"); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
