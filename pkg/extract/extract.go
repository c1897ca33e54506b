// Package extract builds preview cards for links no provider recognises.
//
// [FromURL] derives a synopsis from the URL alone and never touches the
// network. [Extractor.PageOverview] additionally fetches the page and reads
// its OpenGraph and <title>/<meta name="description"> tags; any failure falls
// back to [FromURL]. Page overviews are never cached.
package extract

import (
	"context"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	herrors "github.com/matzehuels/hovercard/pkg/errors"
	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/preview"
)

const (
	// MaxPageBytes caps how much of a page is read for an overview.
	MaxPageBytes = 2 << 20

	pathLimit        = 20
	descriptionLimit = 150

	genericFooter  = "Service non répertorié. Cliquez pour visiter."
	overviewFooter = "Aperçu de la page. Cliquez pour visiter."
	invalidFooter  = "Impossible d'analyser l'URL."
)

// FromURL returns a synopsis built from the URL's host, scheme and path.
func FromURL(raw string) preview.Data {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return invalid(raw)
	}
	return preview.Data{
		Title:       u.Hostname(),
		Description: raw,
		Stats: []preview.Stat{
			{Label: "Protocole", Value: u.Scheme, Icon: "🌐"},
			{Label: "Chemin", Value: shortPath(u.Path), Icon: "📁"},
			{Label: "Source", Value: "Lien Externe", Icon: "🔗"},
		},
		Footer: genericFooter,
	}
}

func invalid(raw string) preview.Data {
	return preview.Data{
		Title:       "Lien Invalide",
		Description: preview.OrDefault(raw, "URL introuvable."),
		Stats:       []preview.Stat{},
		Footer:      invalidFooter,
	}
}

// shortPath keeps paths up to 20 characters and cuts longer ones to 17
// characters plus an ellipsis.
func shortPath(p string) string {
	if p == "" {
		return "/"
	}
	return preview.Truncate(p, pathLimit)
}

// Extractor fetches pages for overviews.
type Extractor struct {
	Client *integrations.Client
	Logger *log.Logger
}

// New creates an extractor. A nil client selects default headers and timeout.
func New(client *integrations.Client, logger *log.Logger) *Extractor {
	if client == nil {
		client = integrations.NewClient(nil, integrations.DefaultHeaders(""))
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Extractor{Client: client, Logger: logger}
}

// PageOverview fetches rawURL and summarises it from its metadata. It never
// fails: unreachable pages, non-HTML responses and pages without usable
// metadata yield [FromURL].
func (e *Extractor) PageOverview(ctx context.Context, rawURL string) preview.Data {
	if err := herrors.ValidateURL(rawURL); err != nil {
		return FromURL(rawURL)
	}
	body, contentType, err := e.Client.GetPage(ctx, rawURL, MaxPageBytes)
	if err != nil {
		e.Logger.Debug("page overview unavailable", "url", rawURL, "error", err)
		return FromURL(rawURL)
	}
	if contentType != "" && !strings.Contains(contentType, "html") {
		e.Logger.Debug("page overview skipped", "url", rawURL, "content_type", contentType)
		return FromURL(rawURL)
	}

	meta := parseMetadata(body)
	if meta.Title == "" && meta.Description == "" {
		return FromURL(rawURL)
	}
	return overview(rawURL, meta)
}

func overview(rawURL string, meta metadata) preview.Data {
	u, _ := url.Parse(rawURL)
	host := u.Hostname()
	return preview.Data{
		Title:       preview.OrDefault(meta.Title, host),
		Description: preview.Truncate(preview.OrDefault(meta.Description, rawURL), descriptionLimit),
		Stats: []preview.Stat{
			{Label: "Site", Value: preview.OrDefault(meta.SiteName, host), Icon: "🏷️"},
			{Label: "Type", Value: preview.OrDefault(meta.Type, "page"), Icon: "📄"},
			{Label: "Chemin", Value: shortPath(u.Path), Icon: "📁"},
		},
		Footer: overviewFooter,
	}
}
