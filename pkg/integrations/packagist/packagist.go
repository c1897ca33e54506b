// Package packagist describes PHP packages published on Packagist.
//
// The p2 metadata endpoint returns every version of the package, newest
// first; only the first entry is used.
package packagist

import (
	"regexp"
	"sort"
	"strings"

	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/preview"
)

// Definition registers Packagist as a provider.
var Definition = integrations.Definition{
	Descriptor: integrations.Descriptor{
		Name:        "packagist",
		DisplayName: "Packagist",
		Domain:      "packagist.org",
		Pattern:     regexp.MustCompile(`packagist\.org/packages/([a-zA-Z0-9_-]+/[a-zA-Z0-9_.-]+)`),
	},
	Handler: integrations.Handler{
		RequestURL: func(c []string) string {
			return "https://repo.packagist.org/p2/" + integrations.Capture(c, 1) + ".json"
		},
		Normalize: normalize,
	},
}

type version struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	Type        string   `json:"type"`
	License     []string `json:"license"`
	Time        string   `json:"time"`
}

type p2Response struct {
	Packages map[string][]version `json:"packages"`
}

func normalize(raw []byte) (preview.Data, error) {
	var r p2Response
	if err := integrations.Decode(raw, &r); err != nil {
		return preview.Data{}, err
	}
	if len(r.Packages) == 0 {
		return preview.Data{}, integrations.MissingField("packages")
	}

	keys := make([]string, 0, len(r.Packages))
	for k := range r.Packages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	versions := r.Packages[keys[0]]
	if len(versions) == 0 {
		return preview.Data{}, integrations.MissingField("packages." + keys[0])
	}

	v := versions[0]
	title := preview.OrDefault(v.Name, keys[0])
	license := preview.NotAvailable
	if len(v.License) > 0 {
		license = strings.Join(v.License, ", ")
	}
	return preview.Data{
		Title:       title,
		Description: preview.OrDefault(v.Description, preview.NoDescription),
		Stats: []preview.Stat{
			{Label: "Version", Value: preview.OrDefault(v.Version, preview.NotAvailable), Icon: "📦"},
			{Label: "Type", Value: preview.OrDefault(v.Type, preview.NotAvailable), Icon: "📁"},
			{Label: "Licence", Value: license, Icon: "📜"},
		},
		Footer: "Publié le : " + preview.ParseDate(v.Time),
	}, nil
}
