// Package datagouv describes datasets published on data.gouv.fr.
package datagouv

import (
	"regexp"

	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/preview"
)

const descriptionLimit = 150

// Definition registers data.gouv.fr as a provider.
var Definition = integrations.Definition{
	Descriptor: integrations.Descriptor{
		Name:        "datagouv",
		DisplayName: "data.gouv.fr",
		Domain:      "data.gouv.fr",
		Pattern:     regexp.MustCompile(`data\.gouv\.fr/(?:[a-z]+/)?datasets/([a-zA-Z0-9_-]+)`),
	},
	Handler: integrations.Handler{
		RequestURL: func(c []string) string {
			return "https://www.data.gouv.fr/api/1/datasets/" + integrations.Capture(c, 1) + "/"
		},
		Normalize: normalize,
	},
}

type datasetResponse struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Organization *struct {
		Name string `json:"name"`
	} `json:"organization"`
	License      string `json:"license"`
	Frequency    string `json:"frequency"`
	LastModified string `json:"last_modified"`
}

func normalize(raw []byte) (preview.Data, error) {
	var r datasetResponse
	if err := integrations.Decode(raw, &r); err != nil {
		return preview.Data{}, err
	}
	if r.Title == "" {
		return preview.Data{}, integrations.MissingField("title")
	}

	org := preview.NotAvailable
	if r.Organization != nil {
		org = preview.OrDefault(r.Organization.Name, preview.NotAvailable)
	}
	return preview.Data{
		Title:       r.Title,
		Description: preview.OrDefault(preview.Excerpt(r.Description, descriptionLimit), preview.NoSummary),
		Stats: []preview.Stat{
			{Label: "Organisation", Value: org, Icon: "🏢"},
			{Label: "Licence", Value: preview.OrDefault(r.License, preview.NotAvailable), Icon: "📜"},
			{Label: "Fréquence", Value: preview.OrDefault(r.Frequency, preview.NotAvailable), Icon: "🔄"},
		},
		Footer: "Dernière MàJ : " + preview.ParseDate(r.LastModified),
	}, nil
}
