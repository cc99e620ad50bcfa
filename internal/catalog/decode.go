package catalog

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/crisphealth/health-assistant/internal/domain"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// document keys are category names; "snacks" is accepted as an alias of "snack".
type document map[string][]domain.Meal

// Decode parses a catalog document shaped {breakfast: [...], lunch: [...],
// dinner: [...], snacks: [...]}. Each meal takes the category of the key it
// is listed under.
func Decode(data []byte, format Format) (*Catalog, error) {
	var doc document
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: unsupported catalog format %q", domain.ErrInvalidArgument, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s catalog: %w", format, err)
	}

	for key := range doc {
		if _, ok := categoryForKey(key); !ok {
			return nil, fmt.Errorf("%w: unknown catalog section %q", domain.ErrInvalidArgument, key)
		}
	}

	var ordered []domain.Meal
	for _, key := range sectionOrder {
		category, _ := categoryForKey(key)
		for _, m := range doc[key] {
			if m.ID == "" || m.Name == "" {
				return nil, fmt.Errorf("%w: meal in %q is missing id or name", domain.ErrInvalidArgument, key)
			}
			m.Category = category
			ordered = append(ordered, m)
		}
	}
	if len(ordered) == 0 {
		return nil, fmt.Errorf("%w: catalog has no meals", domain.ErrInvalidArgument)
	}
	return New(ordered), nil
}

var sectionOrder = []string{"breakfast", "lunch", "dinner", "snack", "snacks"}

func categoryForKey(key string) (domain.MealCategory, bool) {
	if key == "snacks" {
		return domain.CategorySnack, true
	}
	return domain.ParseMealCategory(key)
}
