package mockai

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is the canned content the mock generators draw from.
type Catalog struct {
	CoverLetters struct {
		Default string            `yaml:"default"`
		Tones   map[string]string `yaml:"tones"`
	} `yaml:"coverLetters"`
	Salary struct {
		DefaultBase float64          `yaml:"defaultBase"`
		Roles       []roleBase       `yaml:"roles"`
		Locations   []locationFactor `yaml:"locations"`
		Tips        []string         `yaml:"tips"`
	} `yaml:"salary"`
	Skills struct {
		Catalog         []skillEntry        `yaml:"catalog"`
		Recommendations map[string][]string `yaml:"recommendations"`
		Fallback        []string            `yaml:"fallback"`
	} `yaml:"skills"`
}

type roleBase struct {
	Match []string `yaml:"match"`
	Base  float64  `yaml:"base"`
}

type locationFactor struct {
	Match      []string `yaml:"match"`
	Multiplier float64  `yaml:"multiplier"`
}

type skillEntry struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// ParseCatalog decodes a catalog document and checks the required sections.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if len(c.CoverLetters.Tones) == 0 {
		return Catalog{}, fmt.Errorf("catalog: no cover letter tones")
	}
	if _, ok := c.CoverLetters.Tones[c.CoverLetters.Default]; !ok {
		return Catalog{}, fmt.Errorf("catalog: default tone %q has no template", c.CoverLetters.Default)
	}
	if c.Salary.DefaultBase <= 0 {
		return Catalog{}, fmt.Errorf("catalog: salary.defaultBase must be positive")
	}
	if len(c.Skills.Fallback) == 0 {
		return Catalog{}, fmt.Errorf("catalog: skills.fallback is empty")
	}
	return c, nil
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
