// Package amo describes Firefox extensions listed on addons.mozilla.org.
//
// Localized fields prefer French, then English.
package amo

import (
	"fmt"
	"regexp"

	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/preview"
)

// Definition registers Mozilla Add-ons as a provider.
var Definition = integrations.Definition{
	Descriptor: integrations.Descriptor{
		Name:        "amo",
		DisplayName: "Mozilla Add-ons",
		Domain:      "addons.mozilla.org",
		Pattern:     regexp.MustCompile(`addons\.mozilla\.org/(?:[a-zA-Z-]+/)?firefox/addon/([a-zA-Z0-9_-]+)`),
	},
	Handler: integrations.Handler{
		RequestURL: func(c []string) string {
			return "https://addons.mozilla.org/api/v5/addons/addon/" + integrations.Capture(c, 1) + "/"
		},
		Normalize: normalize,
	},
}

type localized map[string]string

func (l localized) pick(def string) string {
	for _, lang := range []string{"fr", "en"} {
		if v := l[lang]; v != "" {
			return v
		}
	}
	return def
}

type addonResponse struct {
	Name    localized `json:"name"`
	Summary localized `json:"summary"`
	Ratings *struct {
		Average *float64 `json:"average"`
	} `json:"ratings"`
	AverageDailyUsers *int64 `json:"average_daily_users"`
	CurrentVersion    *struct {
		Version string `json:"version"`
	} `json:"current_version"`
	LastUpdated string `json:"last_updated"`
}

func normalize(raw []byte) (preview.Data, error) {
	var r addonResponse
	if err := integrations.Decode(raw, &r); err != nil {
		return preview.Data{}, err
	}
	if r.Name == nil {
		return preview.Data{}, integrations.MissingField("name")
	}
	if r.Ratings == nil || r.Ratings.Average == nil {
		return preview.Data{}, integrations.MissingField("ratings.average")
	}
	if r.AverageDailyUsers == nil {
		return preview.Data{}, integrations.MissingField("average_daily_users")
	}
	version := preview.NotAvailable
	if r.CurrentVersion != nil {
		version = preview.OrDefault(r.CurrentVersion.Version, preview.NotAvailable)
	}

	return preview.Data{
		Title:       r.Name.pick(preview.NotAvailable),
		Description: r.Summary.pick(preview.NoDescription),
		Stats: []preview.Stat{
			{Label: "Note", Value: fmt.Sprintf("%.2f / 5", *r.Ratings.Average), Icon: "⭐"},
			{Label: "Utilisateurs", Value: preview.Count(*r.AverageDailyUsers), Icon: "🧑‍🤝‍🧑"},
			{Label: "Version", Value: version, Icon: "📦"},
		},
		Footer: "Dernière MàJ : " + preview.ParseDate(r.LastUpdated),
	}, nil
}
