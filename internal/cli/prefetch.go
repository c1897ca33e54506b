package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/hovercard/pkg/fetch"
)

// prefetchSummary counts the outcome of a prefetch run.
type prefetchSummary struct {
	Fetched  int64
	Cached   int64
	Skipped  int64
	Failures []prefetchFailure
}

type prefetchFailure struct {
	URL string
	Err error
}

// prefetchCommand creates the prefetch command.
func (c *CLI) prefetchCommand() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "prefetch <file|->",
		Short: "Warm the preview cache for a list of URLs",
		Long: `Fetch and cache previews for the URLs listed one per line in a file, or on
stdin with "-". Blank lines and lines starting with # are ignored, as are
URLs without a provider.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			urls, err := readURLList(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			s, err := c.newStack(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if jobs <= 0 {
				jobs = s.cfg.Actor.Concurrency
			}
			prog := newProgress(c.Logger)
			sum, err := prefetch(cmd.Context(), s.orchestrator, urls, jobs, c.Logger)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Prefetched %d links", sum.Fetched+sum.Cached))
			reportPrefetch(sum)
			if len(sum.Failures) > 0 {
				return fmt.Errorf("%d of %d links failed", len(sum.Failures), len(urls))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "concurrent fetches (default actor.concurrency from config)")
	return cmd
}

// prefetch fetches every URL with at most jobs requests in flight. Failed
// URLs are collected rather than aborting the run; only a cancelled
// context stops it early.
func prefetch(ctx context.Context, o *fetch.Orchestrator, urls []string, jobs int, logger *log.Logger) (*prefetchSummary, error) {
	sum := &prefetchSummary{}
	failures := make([]error, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))

	for i, u := range urls {
		if _, ok := o.Resolve(u); !ok {
			atomic.AddInt64(&sum.Skipped, 1)
			logger.Debug("skipping link without provider", "url", u)
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := o.Fetch(gctx, u)
			switch {
			case err != nil:
				failures[i] = err
				logger.Warn("prefetch failed", "url", u, "error", err)
			case res.CacheHit:
				atomic.AddInt64(&sum.Cached, 1)
			default:
				atomic.AddInt64(&sum.Fetched, 1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, err := range failures {
		if err != nil {
			sum.Failures = append(sum.Failures, prefetchFailure{URL: urls[i], Err: err})
		}
	}
	return sum, nil
}

func reportPrefetch(sum *prefetchSummary) {
	printSuccess("%d fetched · %d already cached · %d without provider", sum.Fetched, sum.Cached, sum.Skipped)
	for _, f := range sum.Failures {
		printError("%s", f.URL)
		printDetail("%v", f.Err)
	}
}

// readURLList reads URLs one per line from path, or from stdin if path is "-".
func readURLList(stdin io.Reader, path string) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var urls []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, sc.Err()
}
