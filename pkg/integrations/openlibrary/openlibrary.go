// Package openlibrary describes works and editions on Open Library.
package openlibrary

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/preview"
)

const descriptionLimit = 150

// Definition registers Open Library as a provider.
var Definition = integrations.Definition{
	Descriptor: integrations.Descriptor{
		Name:        "openlibrary",
		DisplayName: "Open Library",
		Domain:      "openlibrary.org",
		Pattern:     regexp.MustCompile(`openlibrary\.org/(?:works|books)/([a-zA-Z0-9_]+)`),
	},
	Handler: integrations.Handler{
		RequestURL: func(c []string) string {
			return "https://openlibrary.org/works/" + integrations.Capture(c, 1) + ".json"
		},
		Normalize: normalize,
	},
}

type workResponse struct {
	Title            string          `json:"title"`
	Description      json.RawMessage `json:"description"`
	Subjects         []string        `json:"subjects"`
	FirstPublishDate string          `json:"first_publish_date"`
	Revision         int             `json:"revision"`
	LastModified     struct {
		Value string `json:"value"`
	} `json:"last_modified"`
}

// description is either a plain string or a typed text object
// ({"type": "/type/text", "value": "..."}).
func description(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var text struct {
		Value string `json:"value"`
	}
	if json.Unmarshal(raw, &text) == nil {
		return text.Value
	}
	return ""
}

func normalize(raw []byte) (preview.Data, error) {
	var r workResponse
	if err := integrations.Decode(raw, &r); err != nil {
		return preview.Data{}, err
	}
	if r.Title == "" {
		return preview.Data{}, integrations.MissingField("title")
	}

	subjects := r.Subjects
	if len(subjects) > 2 {
		subjects = subjects[:2]
	}
	return preview.Data{
		Title:       r.Title,
		Description: preview.OrDefault(preview.Excerpt(description(r.Description), descriptionLimit), preview.NoSummary),
		Stats: []preview.Stat{
			{Label: "Sujets", Value: preview.OrDefault(strings.Join(subjects, ", "), preview.NotAvailable), Icon: "📚"},
			{Label: "1ère Publi.", Value: preview.OrDefault(r.FirstPublishDate, preview.NotAvailable), Icon: "📅"},
			{Label: "Révisions", Value: strconv.Itoa(r.Revision), Icon: "⚙️"},
		},
		Footer: "Dernière modification : " + preview.ParseDate(r.LastModified.Value),
	}, nil
}
