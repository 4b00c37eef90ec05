package holidays

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/joshuadavidthomas/bihucal/internal/models"
)

// rawHoliday is one record as the model returns it. Category is a pointer so
// a missing value can be told apart from an empty one.
type rawHoliday struct {
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	Category    *string `json:"category"`
	Description string  `json:"description"`
}

// NormalizeCategory maps free-form category text onto a Category. Anything
// mentioning "assam" is regional; everything else is national.
func NormalizeCategory(raw string) models.Category {
	if strings.Contains(strings.ToLower(raw), "assam") {
		return models.CategoryRegional
	}
	return models.CategoryNational
}

// decode checks that text is a JSON array and splits it into records.
func decode(text string) ([]json.RawMessage, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("expected a JSON array, got null")
	}
	return raw, nil
}

// normalize rewrites each record's category and keeps everything else as
// returned. A record fails only when it is not an object of strings or has no
// category to normalize. Odd dates and empty names are kept; they match no
// grid day and are logged.
func normalize(logger *log.Logger, raw []json.RawMessage) ([]models.Holiday, error) {
	out := make([]models.Holiday, 0, len(raw))
	for i, msg := range raw {
		var r rawHoliday
		if err := json.Unmarshal(msg, &r); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if r.Category == nil {
			return nil, fmt.Errorf("record %d (%q): no category", i, r.Name)
		}
		h := models.Holiday{
			Date:        r.Date,
			Name:        r.Name,
			Category:    NormalizeCategory(*r.Category),
			Description: r.Description,
		}
		if err := h.Validate(); err != nil {
			logger.Debug("keeping irregular holiday record", "record", i, "err", err)
		}
		out = append(out, h)
	}
	return out, nil
}
