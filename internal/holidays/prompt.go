package holidays

import (
	"fmt"

	"github.com/joshuadavidthomas/bihucal/internal/gemini"
)

// Prompt is the instruction sent to the model for year.
func Prompt(year int) string {
	return fmt.Sprintf("Generate a JSON list of all significant Indian National holidays and Assamese regional holidays "+
		"(including festivals like Bihu, Ambubachi, etc.) for the year %d. "+
		"Ensure accuracy of dates for festivals that follow the lunar calendar. "+
		"Output should be an array of objects with 'date' (YYYY-MM-DD), 'name', and 'category' (either 'National' or 'Assamese').", year)
}

// ResponseSchema constrains the answer to an array of {date, name, category}
// objects with every field required.
func ResponseSchema() *gemini.Schema {
	return &gemini.Schema{
		Type: gemini.TypeArray,
		Items: &gemini.Schema{
			Type: gemini.TypeObject,
			Properties: map[string]*gemini.Schema{
				"date":     {Type: gemini.TypeString},
				"name":     {Type: gemini.TypeString},
				"category": {Type: gemini.TypeString},
			},
			Required: []string{"date", "name", "category"},
		},
	}
}
