package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	herrors "github.com/matzehuels/hovercard/pkg/errors"
	"github.com/matzehuels/hovercard/pkg/extract"
	"github.com/matzehuels/hovercard/pkg/preview"
)

// Output formats for commands that print preview data.
const (
	outputCard = "card"
	outputJSON = "json"
	outputYAML = "yaml"
)

type previewOpts struct {
	output string
	page   bool
	width  int
}

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOpts{output: outputCard, width: cardWidth}

	cmd := &cobra.Command{
		Use:   "preview <url>",
		Short: "Render the preview card for a URL",
		Long: `Resolve a URL against the provider registry and render its preview card.

URLs without a provider get a local synopsis built from the URL itself, or
from the page's metadata with --page.`,
		Example: `  hovercard preview https://github.com/octocat/Hello-World
  hovercard preview https://www.npmjs.com/package/react -o json
  hovercard preview https://go.dev/blog/ --page`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output format: card, json or yaml")
	cmd.Flags().BoolVar(&opts.page, "page", false, "scrape page metadata for links without a provider")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "card width in cells")
	completeOutput(cmd, outputCard, outputJSON, outputYAML)

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, rawURL string, opts previewOpts) error {
	if err := checkOutput(opts.output); err != nil {
		return err
	}
	ctx := cmd.Context()

	s, err := c.newStack(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	spinner := newSpinnerWithContext(ctx, "Fetching preview...")
	spinner.Start()
	res, err := s.orchestrator.Fetch(ctx, rawURL)
	spinner.Stop()

	var data preview.Data
	switch {
	case herrors.Is(err, herrors.ErrCodeUnknownProvider):
		c.Logger.Debug("no provider, using local synopsis", "url", rawURL, "page", opts.page)
		if opts.page {
			data = s.extractor.PageOverview(ctx, rawURL)
		} else {
			data = extract.FromURL(rawURL)
		}
	case err != nil:
		if opts.output == outputCard {
			fmt.Fprintln(cmd.OutOrStdout(), renderErrorCard(err.Error(), opts.width))
		}
		return err
	default:
		data = res.Data
		c.Logger.Debug("preview ready",
			"provider", res.Provider,
			"key", res.Key,
			"cached", res.CacheHit,
			"duration", res.Duration)
	}

	if err := writePreview(cmd.OutOrStdout(), data, opts.output, opts.width); err != nil {
		return err
	}
	if res != nil && opts.output == outputCard {
		name := string(res.Provider)
		if p, ok := s.registry.Lookup(res.Provider); ok {
			name = p.DisplayName
		}
		printDetail("%s · %s", name, cacheStatus(res.CacheHit))
	}
	return nil
}

// writePreview prints data in the requested format.
func writePreview(w io.Writer, data preview.Data, format string, width int) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		_, err := fmt.Fprintln(w, renderCard(data, width))
		return err
	}
}

func checkOutput(format string) error {
	switch format {
	case outputCard, outputJSON, outputYAML:
		return nil
	default:
		return herrors.New(herrors.ErrCodeInvalidInput, "unknown output format %q (want card, json or yaml)", format)
	}
}
