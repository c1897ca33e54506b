// Package npm describes npm packages using the npms.io search API.
package npm

import (
	"regexp"

	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/preview"
)

// Definition registers npm as a provider.
var Definition = integrations.Definition{
	Descriptor: integrations.Descriptor{
		Name:        "npm",
		DisplayName: "NPM",
		Domain:      "npmjs.com",
		Pattern:     regexp.MustCompile(`npmjs\.com/package/([a-zA-Z0-9_.-]+)`),
	},
	Handler: integrations.Handler{
		RequestURL: func(c []string) string {
			return "https://api.npms.io/v2/package/" + integrations.PathEscape(integrations.Capture(c, 1))
		},
		Normalize: normalize,
	},
}

type packageResponse struct {
	Collected *struct {
		Metadata *struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Version     string `json:"version"`
			License     string `json:"license"`
		} `json:"metadata"`
	} `json:"collected"`
	Score *struct {
		Final  *float64 `json:"final"`
		Detail *struct {
			Popularity *float64 `json:"popularity"`
		} `json:"detail"`
	} `json:"score"`
}

func normalize(raw []byte) (preview.Data, error) {
	var r packageResponse
	if err := integrations.Decode(raw, &r); err != nil {
		return preview.Data{}, err
	}
	if r.Collected == nil || r.Collected.Metadata == nil || r.Collected.Metadata.Name == "" {
		return preview.Data{}, integrations.MissingField("collected.metadata.name")
	}
	if r.Score == nil || r.Score.Final == nil {
		return preview.Data{}, integrations.MissingField("score.final")
	}
	if r.Score.Detail == nil || r.Score.Detail.Popularity == nil {
		return preview.Data{}, integrations.MissingField("score.detail.popularity")
	}

	m := r.Collected.Metadata
	return preview.Data{
		Title:       m.Name,
		Description: preview.OrDefault(m.Description, preview.NoDescription),
		Stats: []preview.Stat{
			{Label: "Version", Value: preview.OrDefault(m.Version, preview.NotAvailable), Icon: "📦"},
			{Label: "Qualité", Value: preview.Percent(*r.Score.Final), Icon: "🏆"},
			{Label: "Popularité", Value: preview.Percent(*r.Score.Detail.Popularity), Icon: "🔥"},
		},
		Footer: "Licence : " + preview.OrDefault(m.License, preview.NotAvailable),
	}, nil
}
