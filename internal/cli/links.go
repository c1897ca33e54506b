package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/hovercard/pkg/buildinfo"
	"github.com/matzehuels/hovercard/pkg/document"
	herrors "github.com/matzehuels/hovercard/pkg/errors"
	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/integrations/builtin"
	"github.com/matzehuels/hovercard/pkg/observer"
)

// maxDocumentBytes caps documents loaded over HTTP.
const maxDocumentBytes = 8 << 20

// linkInfo describes one previewable link of a document.
type linkInfo struct {
	Text     string `json:"text" yaml:"text"`
	Href     string `json:"href" yaml:"href"`
	Provider string `json:"provider" yaml:"provider"`
	CacheKey string `json:"cacheKey,omitempty" yaml:"cacheKey,omitempty"`
}

// linksCommand creates the links command.
func (c *CLI) linksCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "links <file.html|url>",
		Short: "List the previewable links of an HTML document",
		Long: `List every link of an HTML document that gets a preview card, with the
provider it resolves to. Links without a provider are marked "local".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "table" && output != outputJSON && output != outputYAML {
				return herrors.New(herrors.ErrCodeInvalidInput, "unknown output format %q (want table, json or yaml)", output)
			}
			doc, err := loadDocument(cmd.Context(), nil, args[0])
			if err != nil {
				return err
			}
			links := collectLinks(doc, builtin.Registry())
			return writeLinks(cmd.OutOrStdout(), links, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	completeOutput(cmd, "table", outputJSON, outputYAML)
	return cmd
}

// collectLinks runs an observer over doc once and resolves every link it
// binds.
func collectLinks(doc *document.Document, reg *integrations.Registry) []linkInfo {
	var links []linkInfo
	obs := observer.New(doc, observer.BinderFunc(func(n *document.Node) {
		info := linkInfo{Text: strings.TrimSpace(n.Text()), Href: n.Href(), Provider: "local"}
		if m, ok := reg.Resolve(info.Href); ok {
			info.Provider = string(m.Provider.Name)
			info.CacheKey = m.CacheKey()
		}
		links = append(links, info)
	}), nil)
	obs.Scan()
	return links
}

func writeLinks(w io.Writer, links []linkInfo, format string) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(links)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(links)
	}

	if len(links) == 0 {
		printInfo("No previewable links")
		return nil
	}
	rows := make([][]string, len(links))
	for i, l := range links {
		rows[i] = []string{strconv.Itoa(i + 1), truncateCell(l.Text, 30), truncateCell(l.Href, 60), l.Provider}
	}
	_, err := fmt.Fprintln(w, renderTable([]string{"#", "Text", "Link", "Provider"}, rows))
	return err
}

// loadDocument parses src, which is a file path or an http(s) URL. A nil
// client selects default headers.
func loadDocument(ctx context.Context, client *integrations.Client, src string) (*document.Document, error) {
	if !herrors.IsHTTPLink(src) {
		f, err := os.Open(src)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return document.Parse(f)
	}

	if err := herrors.ValidateURL(src); err != nil {
		return nil, err
	}
	if client == nil {
		client = integrations.NewClient(nil, integrations.DefaultHeaders(buildinfo.UserAgent()))
	}
	body, _, err := client.GetPage(ctx, src, maxDocumentBytes)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src, err)
	}
	return document.Parse(bytes.NewReader(body))
}

func truncateCell(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
