// Package dockerhub describes container image repositories on Docker Hub.
//
// Both user repositories (hub.docker.com/r/<namespace>/<name>) and official
// images (hub.docker.com/_/<name>, namespace "library") are recognised.
package dockerhub

import (
	"regexp"

	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/preview"
)

const officialNamespace = "library"

// Definition registers Docker Hub as a provider.
var Definition = integrations.Definition{
	Descriptor: integrations.Descriptor{
		Name:        "dockerhub",
		DisplayName: "Docker Hub",
		Domain:      "hub.docker.com",
		Pattern:     regexp.MustCompile(`hub\.docker\.com/(?:r/([a-zA-Z0-9_.-]+)/([a-zA-Z0-9_.-]+)|_/([a-zA-Z0-9_.-]+))`),
	},
	Handler: integrations.Handler{
		RequestURL: requestURL,
		Normalize:  normalize,
	},
}

func requestURL(captures []string) string {
	namespace := preview.OrDefault(integrations.Capture(captures, 1), officialNamespace)
	repo := integrations.Capture(captures, 2)
	if repo == "" {
		repo = integrations.Capture(captures, 3)
	}
	return "https://hub.docker.com/v2/repositories/" + namespace + "/" + repo + "/"
}

type repositoryResponse struct {
	User        string `json:"user"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PullCount   *int64 `json:"pull_count"`
	StarCount   *int64 `json:"star_count"`
	IsAutomated bool   `json:"is_automated"`
	LastUpdated string `json:"last_updated"`
}

func normalize(raw []byte) (preview.Data, error) {
	var r repositoryResponse
	if err := integrations.Decode(raw, &r); err != nil {
		return preview.Data{}, err
	}
	if r.Name == "" {
		return preview.Data{}, integrations.MissingField("name")
	}
	if r.PullCount == nil {
		return preview.Data{}, integrations.MissingField("pull_count")
	}
	if r.StarCount == nil {
		return preview.Data{}, integrations.MissingField("star_count")
	}

	status := "Manuel"
	if r.IsAutomated {
		status = "Automatisé"
	}
	return preview.Data{
		Title:       preview.OrDefault(r.User, officialNamespace) + "/" + r.Name,
		Description: preview.OrDefault(r.Description, preview.NoDescription),
		Stats: []preview.Stat{
			{Label: "Pulls", Value: preview.Count(*r.PullCount), Icon: "📥"},
			{Label: "Stars", Value: preview.Count(*r.StarCount), Icon: "⭐"},
			{Label: "Statut", Value: status, Icon: "⚙️"},
		},
		Footer: "Dernière MàJ : " + preview.ParseDate(r.LastUpdated),
	}, nil
}
