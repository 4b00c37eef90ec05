package display

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/joshuadavidthomas/bihucal/internal/holidays"
	"github.com/joshuadavidthomas/bihucal/internal/models"
)

// OutputJSON writes pretty-printed JSON to the given writer.
func OutputJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// OutputYAML writes data as a YAML document.
func OutputYAML(w io.Writer, data any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

// YearToJSON converts a lookup outcome to its serializable form. Source tells
// scripted callers whether the data is live; the fetch error itself is only
// logged.
func YearToJSON(o holidays.Outcome) YearJSON {
	list := o.Holidays
	if list == nil {
		list = []models.Holiday{}
	}
	return YearJSON{Year: o.Year, Source: string(o.Source), Holidays: list}
}
