package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/hovercard/pkg/cache"
	"github.com/matzehuels/hovercard/pkg/config"
	herrors "github.com/matzehuels/hovercard/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the preview cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheListCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStack(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			n := len(s.cache.Entries(cmd.Context()))
			if n == 0 {
				printInfo("Cache is empty")
				return nil
			}
			if err := s.cache.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared %d cached previews", n)
			printDetail("Store: %s", storeLocation(s.cfg))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), storeLocation(cfg))
			return nil
		},
	}
}

// cacheListCommand creates the "cache list" subcommand.
func (c *CLI) cacheListCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached previews with their age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "table" && output != outputJSON && output != outputYAML {
				return herrors.New(herrors.ErrCodeInvalidInput, "unknown output format %q (want table, json or yaml)", output)
			}
			s, err := c.newStack(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			return writeCacheItems(cmd.OutOrStdout(), s.cache.Entries(cmd.Context()), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	completeOutput(cmd, "table", outputJSON, outputYAML)
	return cmd
}

type cacheListing struct {
	Key      string `json:"key" yaml:"key"`
	Title    string `json:"title" yaml:"title"`
	StoredAt string `json:"storedAt" yaml:"storedAt"`
	Age      string `json:"age" yaml:"age"`
	Fresh    bool   `json:"fresh" yaml:"fresh"`
}

func writeCacheItems(w io.Writer, items []cache.Item, format string) error {
	listing := make([]cacheListing, len(items))
	for i, it := range items {
		listing[i] = cacheListing{
			Key:      it.Key,
			Title:    it.Entry.Value.Title,
			StoredAt: time.UnixMilli(it.Entry.StoredAt).UTC().Format(time.RFC3339),
			Age:      it.Age.Round(time.Second).String(),
			Fresh:    it.Fresh,
		}
	}

	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(listing)
	}

	if len(listing) == 0 {
		printInfo("Cache is empty")
		return nil
	}
	rows := make([][]string, len(listing))
	for i, l := range listing {
		state := styleFresh.Render("fresh")
		if !l.Fresh {
			state = styleStale.Render("stale")
		}
		rows[i] = []string{truncateCell(l.Key, 60), truncateCell(l.Title, 30), l.Age, state}
	}
	_, err := fmt.Fprintln(w, renderTable([]string{"Key", "Title", "Age", "State"}, rows))
	return err
}

// storeLocation describes where the configured backend keeps the record.
func storeLocation(cfg config.Config) string {
	switch cache.Backend(cfg.Cache.Backend) {
	case cache.BackendRedis:
		return fmt.Sprintf("redis://%s (key %s)", cfg.Cache.RedisAddr, cfg.Cache.RedisKey)
	case cache.BackendMongo:
		return fmt.Sprintf("%s (database %s)", cfg.Cache.MongoURI, cfg.Cache.MongoDatabase)
	case cache.BackendMemory, cache.BackendNone:
		return "(" + cfg.Cache.Backend + ", not persisted)"
	default:
		if cfg.Cache.Path != "" {
			return cfg.Cache.Path
		}
		return cache.DefaultPath()
	}
}
