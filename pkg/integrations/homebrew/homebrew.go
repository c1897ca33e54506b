// Package homebrew describes Homebrew formulae.
package homebrew

import (
	"regexp"
	"strconv"

	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/preview"
)

// Definition registers Homebrew as a provider.
var Definition = integrations.Definition{
	Descriptor: integrations.Descriptor{
		Name:        "homebrew",
		DisplayName: "Homebrew",
		Domain:      "formulae.brew.sh",
		Pattern:     regexp.MustCompile(`formulae\.brew\.sh/formula/([a-zA-Z0-9+_-]+)`),
	},
	Handler: integrations.Handler{
		RequestURL: func(c []string) string {
			return "https://formulae.brew.sh/api/formula/" + integrations.Capture(c, 1) + ".json"
		},
		Normalize: normalize,
	},
}

type formulaResponse struct {
	FullName string `json:"full_name"`
	Desc     string `json:"desc"`
	Versions struct {
		Stable string `json:"stable"`
	} `json:"versions"`
	License  string `json:"license"`
	Revision int    `json:"revision"`
	Homepage string `json:"homepage"`
}

func normalize(raw []byte) (preview.Data, error) {
	var r formulaResponse
	if err := integrations.Decode(raw, &r); err != nil {
		return preview.Data{}, err
	}
	if r.FullName == "" {
		return preview.Data{}, integrations.MissingField("full_name")
	}

	return preview.Data{
		Title:       r.FullName,
		Description: preview.OrDefault(r.Desc, preview.NoDescription),
		Stats: []preview.Stat{
			{Label: "Version", Value: preview.OrDefault(r.Versions.Stable, preview.NotAvailable), Icon: "📦"},
			{Label: "Licence", Value: preview.OrDefault(r.License, preview.NotAvailable), Icon: "📜"},
			{Label: "Révision", Value: strconv.Itoa(r.Revision), Icon: "⚙️"},
		},
		Footer: "Homepage : " + preview.OrDefault(integrations.Hostname(r.Homepage), preview.NotAvailable),
	}, nil
}
