// Package config parses the mode-keyed YAML configuration document
// recognized by the core (§6): per-mode ruler columns, char-map/color-map
// overrides, and the two boolean display toggles.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// TextModeConfig holds the settings §6 attributes to "text-mode".
type TextModeConfig struct {
	Ruler             []int             `yaml:"ruler"`
	CharMap           map[string]string `yaml:"char-map"`
	ColorMap          map[string]string `yaml:"color-map"`
	DisplayEndOfLine  bool              `yaml:"display-end-of-line"`
	DisplayWordWrap   bool              `yaml:"display-word-wrap"`
}

// Config is the top-level mode-keyed document. Modes not named here
// (dir-mode, status-line-mode, ...) are left for future collaborators;
// this repo's core only reads text-mode.
type Config struct {
	TextMode TextModeConfig `yaml:"text-mode"`
}

// Load reads and parses a YAML configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes a YAML configuration document already read into memory.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return &cfg, nil
}

// CharMapRunes converts the string-keyed YAML maps into the rune-keyed
// maps filter.Options expects. Multi-byte YAML keys outside a single
// rune are skipped, since the char-map substitutes one code point for
// another.
func (c TextModeConfig) CharMapRunes() map[rune]string {
	return runeKeyed(c.CharMap)
}

// ColorMapRunes mirrors CharMapRunes for the color-map override table.
func (c TextModeConfig) ColorMapRunes() map[rune]string {
	return runeKeyed(c.ColorMap)
}

func runeKeyed(in map[string]string) map[rune]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[rune]string, len(in))
	for k, v := range in {
		r := []rune(k)
		if len(r) != 1 {
			continue
		}
		out[r[0]] = v
	}
	return out
}
