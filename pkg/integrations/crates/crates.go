package crates

import (
	"regexp"

	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/preview"
)

// Definition registers crates.io as a provider.
var Definition = integrations.Definition{
	Descriptor: integrations.Descriptor{
		Name:        "crates",
		DisplayName: "Crates.io",
		Domain:      "crates.io",
		Pattern:     regexp.MustCompile(`crates\.io/crates/([a-zA-Z0-9_-]+)`),
	},
	Handler: integrations.Handler{
		RequestURL: func(c []string) string {
			return "https://crates.io/api/v1/crates/" + integrations.Capture(c, 1)
		},
		Normalize: normalize,
	},
}

type crateResponse struct {
	Crate *struct {
		ID               string `json:"id"`
		Description      string `json:"description"`
		MaxStableVersion string `json:"max_stable_version"`
		RecentDownloads  int64  `json:"recent_downloads"`
		Downloads        int64  `json:"downloads"`
		UpdatedAt        string `json:"updated_at"`
	} `json:"crate"`
}

func normalize(raw []byte) (preview.Data, error) {
	var r crateResponse
	if err := integrations.Decode(raw, &r); err != nil {
		return preview.Data{}, err
	}
	if r.Crate == nil || r.Crate.ID == "" {
		return preview.Data{}, integrations.MissingField("crate.id")
	}

	c := r.Crate
	return preview.Data{
		Title:       c.ID,
		Description: preview.OrDefault(c.Description, preview.NoDescription),
		Stats: []preview.Stat{
			{Label: "Version", Value: preview.OrDefault(c.MaxStableVersion, preview.NotAvailable), Icon: "📦"},
			{Label: "DL Récents", Value: preview.Count(c.RecentDownloads), Icon: "📈"},
			{Label: "DL Total", Value: preview.Count(c.Downloads), Icon: "📥"},
		},
		Footer: "Dernière MàJ : " + preview.ParseDate(c.UpdatedAt),
	}, nil
}
