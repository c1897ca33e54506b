package github

import (
	"regexp"
	"strings"

	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/preview"
)

const apiURL = "https://api.github.com"

// Definition registers GitHub as a provider.
var Definition = integrations.Definition{
	Descriptor: integrations.Descriptor{
		Name:            "github",
		DisplayName:     "GitHub",
		Domain:          "github.com",
		Pattern:         regexp.MustCompile(`github\.com/([a-zA-Z0-9_-]+)/([a-zA-Z0-9_.-]+)`),
		RateLimitHeader: "X-RateLimit-Remaining",
	},
	Handler: integrations.Handler{
		RequestURL: requestURL,
		Normalize:  normalize,
	},
}

type repoResponse struct {
	FullName        string  `json:"full_name"`
	Description     *string `json:"description"`
	StargazersCount *int64  `json:"stargazers_count"`
	ForksCount      *int64  `json:"forks_count"`
	OpenIssuesCount *int64  `json:"open_issues_count"`
	PushedAt        string  `json:"pushed_at"`
}

func requestURL(captures []string) string {
	owner := integrations.Capture(captures, 1)
	repo := strings.TrimSuffix(integrations.Capture(captures, 2), ".git")
	return apiURL + "/repos/" + owner + "/" + repo
}

func normalize(raw []byte) (preview.Data, error) {
	var r repoResponse
	if err := integrations.Decode(raw, &r); err != nil {
		return preview.Data{}, err
	}
	if r.FullName == "" {
		return preview.Data{}, integrations.MissingField("full_name")
	}
	switch {
	case r.StargazersCount == nil:
		return preview.Data{}, integrations.MissingField("stargazers_count")
	case r.ForksCount == nil:
		return preview.Data{}, integrations.MissingField("forks_count")
	case r.OpenIssuesCount == nil:
		return preview.Data{}, integrations.MissingField("open_issues_count")
	}

	desc := preview.NoDescription
	if r.Description != nil {
		desc = preview.OrDefault(*r.Description, preview.NoDescription)
	}
	return preview.Data{
		Title:       r.FullName,
		Description: desc,
		Stats: []preview.Stat{
			{Label: "Stars", Value: preview.Count(*r.StargazersCount), Icon: "⭐"},
			{Label: "Forks", Value: preview.Count(*r.ForksCount), Icon: "🍴"},
			{Label: "Issues", Value: preview.Count(*r.OpenIssuesCount), Icon: "⚫"},
		},
		Footer: "Dernière MàJ : " + preview.ParseDate(r.PushedAt),
	}, nil
}
