// Package theme holds the storefront styling tokens consumed by the card renderer.
package theme

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Colors is the storefront palette
type Colors struct {
	White     string `yaml:"white"`
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Gray      Shades `yaml:"gray"`
}

// Shades maps a gray shade (100, 300, 500, 700, 900) to a color
type Shades map[int]string

// UnmarshalYAML accepts shade keys written either as numbers or as quoted strings
func (s *Shades) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	out := make(Shades, len(raw))
	for k, v := range raw {
		shade, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("gray shade %q is not a number", k)
		}
		out[shade] = v
	}
	*s = out
	return nil
}

// Weights is the font-weight scale
type Weights struct {
	Normal int `yaml:"normal"`
	Medium int `yaml:"medium"`
	Bold   int `yaml:"bold"`
}

// Theme is read-only after load
type Theme struct {
	Colors  Colors  `yaml:"colors"`
	Weights Weights `yaml:"weights"`
}

// Default returns the built-in storefront theme.
func Default() Theme {
	return Theme{
		Colors: Colors{
			White:     "hsl(0deg 0% 100%)",
			Primary:   "hsl(340deg 65% 47%)",
			Secondary: "hsl(240deg 60% 63%)",
			Gray: Shades{
				100: "hsl(185deg 5% 95%)",
				300: "hsl(190deg 5% 80%)",
				500: "hsl(196deg 4% 60%)",
				700: "hsl(220deg 5% 40%)",
				900: "hsl(220deg 3% 20%)",
			},
		},
		Weights: Weights{
			Normal: 500,
			Medium: 600,
			Bold:   800,
		},
	}
}

// GrayShade returns the gray for shade, or "inherit" when the palette has no such shade.
func (t Theme) GrayShade(shade int) string {
	if c, ok := t.Colors.Gray[shade]; ok {
		return c
	}
	return "inherit"
}

// Load reads a YAML theme file. Fields missing from the file keep their Default values.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("failed to read theme file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML theme data on top of Default.
func Parse(data []byte) (Theme, error) {
	t := Default()
	defaults := t.Colors.Gray
	t.Colors.Gray = nil

	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("failed to parse theme: %w", err)
	}

	// Merge gray shades so a file can override a single shade.
	merged := make(Shades, len(defaults))
	for shade, c := range defaults {
		merged[shade] = c
	}
	for shade, c := range t.Colors.Gray {
		merged[shade] = c
	}
	t.Colors.Gray = merged

	if t.Colors.Primary == "" || t.Colors.Secondary == "" || t.Colors.White == "" {
		return Theme{}, fmt.Errorf("theme colors primary, secondary and white must not be empty")
	}
	if t.Weights.Normal <= 0 || t.Weights.Medium <= 0 || t.Weights.Bold <= 0 {
		return Theme{}, fmt.Errorf("theme weights normal, medium and bold must be positive")
	}
	return t, nil
}
