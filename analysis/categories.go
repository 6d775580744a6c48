package analysis

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Category is a named group of improvement keywords.
type Category struct {
	Key      string   `yaml:"key"`
	Keywords []string `yaml:"keywords"`
}

// Name is the display form of the key: "hands_on" -> "Hands On".
func (c Category) Name() string { return DisplayName(c.Key) }

var titleCaser = cases.Title(language.English)

// DisplayName turns a snake_case key into a title-cased label.
func DisplayName(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// DefaultCategories is the catalogue derived from the feedback the program received.
func DefaultCategories() []Category {
	return []Category{
		{Key: "hands_on", Keywords: []string{"hands on", "hands-on", "practical", "demos", "tutorials", "exercises", "projects", "coding"}},
		{Key: "structure", Keywords: []string{"schedule", "agenda", "structure", "organization", "planning", "logistics"}},
		{Key: "content", Keywords: []string{"content", "basics", "fundamentals", "technical", "insights", "learning"}},
		{Key: "communication", Keywords: []string{"communication", "emails", "reminders", "guidelines", "instructions"}},
		{Key: "logistics", Keywords: []string{"room", "food", "wifi", "outlets", "setup", "prep work", "materials"}},
		{Key: "interactive", Keywords: []string{"interactive", "discussions", "team projects", "workflows"}},
		{Key: "time", Keywords: []string{"time management", "longer sessions", "more time", "unstructured time"}},
		{Key: "track_specific", Keywords: []string{"tracks", "career path", "developer", "productivity", "executive"}},
	}
}

type categoryFile struct {
	Categories []Category `yaml:"categories"`
}

// LoadCategories reads a YAML catalogue. An empty path yields the defaults.
func LoadCategories(path string) ([]Category, error) {
	if path == "" {
		return DefaultCategories(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f categoryFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("%s: no categories defined", path)
	}
	for i, c := range f.Categories {
		if strings.TrimSpace(c.Key) == "" {
			return nil, fmt.Errorf("%s: category %d has no key", path, i)
		}
		for j, k := range c.Keywords {
			f.Categories[i].Keywords[j] = strings.ToLower(k)
		}
	}
	return f.Categories, nil
}
