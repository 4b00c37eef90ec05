package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and cache format of Holiday.Date.
const DateLayout = "2006-01-02"

// Category classifies the jurisdiction a holiday is observed in. The string
// values are what gets stored in the cache and printed in JSON.
type Category string

const (
	CategoryNational Category = "National"
	CategoryRegional Category = "Assamese"
	CategoryOther    Category = "Other"
)

// Categories lists every category in legend order.
var Categories = []Category{CategoryNational, CategoryRegional, CategoryOther}

func (c Category) Valid() bool {
	switch c {
	case CategoryNational, CategoryRegional, CategoryOther:
		return true
	}
	return false
}

// Label is the short human name used in legends and filters.
func (c Category) Label() string {
	switch c {
	case CategoryNational:
		return "National"
	case CategoryRegional:
		return "Regional"
	default:
		return "Other"
	}
}

// ParseCategory accepts either the stored value ("Assamese") or the label
// ("regional"), case-insensitively.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "national":
		return CategoryNational, nil
	case "assamese", "regional":
		return CategoryRegional, nil
	case "other":
		return CategoryOther, nil
	}
	return "", fmt.Errorf("unknown category %q (want national, regional or other)", s)
}

// Holiday is a single dated observance. Values are treated as immutable;
// two holidays on the same date are both kept.
type Holiday struct {
	Date        string   `json:"date" yaml:"date"`
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"category" yaml:"category"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Time parses Date as a UTC calendar day.
func (h Holiday) Time() (time.Time, error) {
	return time.Parse(DateLayout, h.Date)
}

// Validate reports whether the holiday has a parseable date, a name and a known category.
func (h Holiday) Validate() error {
	if _, err := h.Time(); err != nil {
		return fmt.Errorf("holiday %q: bad date %q: %w", h.Name, h.Date, err)
	}
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("holiday on %s has no name", h.Date)
	}
	if !h.Category.Valid() {
		return fmt.Errorf("holiday %q: unknown category %q", h.Name, h.Category)
	}
	return nil
}

// FilterByCategory returns the holidays in cat, preserving order.
func FilterByCategory(list []Holiday, cat Category) []Holiday {
	var out []Holiday
	for _, h := range list {
		if h.Category == cat {
			out = append(out, h)
		}
	}
	return out
}
