package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hovercard/pkg/bridge"
	"github.com/matzehuels/hovercard/pkg/buildinfo"
	"github.com/matzehuels/hovercard/pkg/cache"
	"github.com/matzehuels/hovercard/pkg/config"
	"github.com/matzehuels/hovercard/pkg/extract"
	"github.com/matzehuels/hovercard/pkg/fetch"
	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/integrations/builtin"
	"github.com/matzehuels/hovercard/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "hovercard"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath   string
	cacheBackend string
	noCache      bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Hovercard previews links to repositories, packages, datasets and books",
		Long: `Hovercard resolves links against a registry of providers (GitHub, npm,
crates.io, Packagist, Homebrew, Docker Hub, Mozilla Add-ons, Open Library,
data.gouv.fr), fetches and caches their API data, and renders a preview card.
Links without a provider get a local synopsis.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/hovercard/config.toml)")
	flags.StringVar(&c.cacheBackend, "cache-backend", "", "override cache.backend (file, redis, mongo, memory, none)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the preview cache")

	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.linksCommand())
	root.AddCommand(c.prefetchCommand())
	root.AddCommand(c.providersCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the config file and applies the global flag overrides.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	switch {
	case c.noCache:
		cfg.Cache.Backend = string(cache.BackendNone)
	case c.cacheBackend != "":
		cfg.Cache.Backend = c.cacheBackend
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userAgent returns the configured User-Agent, stamping the build version
// into the default one.
func userAgent(cfg config.Config) string {
	if cfg.HTTP.UserAgent == "" || cfg.HTTP.UserAgent == integrations.DefaultUserAgent {
		return buildinfo.UserAgent()
	}
	return cfg.HTTP.UserAgent
}

// =============================================================================
// Fetch Stack
// =============================================================================

// stack is the fetch side assembled from configuration: everything that
// talks to remote APIs or the cache store.
type stack struct {
	cfg          config.Config
	store        cache.Store
	cache        *cache.TTLCache
	registry     *integrations.Registry
	client       *integrations.Client
	orchestrator *fetch.Orchestrator
	extractor    *extract.Extractor
}

// newStack opens the configured cache store and wires the orchestrator.
// Callers must Close the stack.
func (c *CLI) newStack(ctx context.Context) (*stack, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return buildStack(ctx, cfg, c.Logger)
}

func buildStack(ctx context.Context, cfg config.Config, logger *log.Logger) (*stack, error) {
	store, err := cache.Open(ctx, cfg.CacheOptions())
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	logger.Debug("cache store opened", "backend", cfg.Cache.Backend, "ttl", cfg.Cache.TTL)
	if logger.GetLevel() <= log.DebugLevel {
		observability.NewLogHooks(logger).Install()
	}

	ttl := cache.New(store, cache.WithTTL(cfg.Cache.TTL.Duration), cache.WithLogger(logger))
	client := integrations.NewClient(
		integrations.NewHTTPClient(cfg.HTTP.Timeout.Duration),
		integrations.DefaultHeaders(userAgent(cfg)),
	)
	reg := builtin.Registry()

	return &stack{
		cfg:          cfg,
		store:        store,
		cache:        ttl,
		registry:     reg,
		client:       client,
		orchestrator: fetch.NewOrchestrator(reg, ttl, client, logger),
		extractor:    extract.New(client, logger),
	}, nil
}

// service returns the message handler over this stack.
func (s *stack) service() *bridge.Service {
	return &bridge.Service{Orchestrator: s.orchestrator, Extractor: s.extractor}
}

// actor runs the service with the configured concurrency.
func (s *stack) actor(logger *log.Logger) *bridge.Actor {
	return bridge.NewActor(s.service(), s.cfg.Actor.Concurrency, logger)
}

// startActor runs the actor under a context derived from ctx. Requests must be
// sent with the returned context; stop cancels it, abandoning fetches still in
// flight, and waits for the actor to drain.
func (s *stack) startActor(ctx context.Context, logger *log.Logger) (context.Context, *bridge.Actor, func()) {
	ctx, cancel := context.WithCancel(ctx)
	a := s.actor(logger)
	return ctx, a, func() {
		cancel()
		a.Wait()
	}
}

// Close releases the cache store.
func (s *stack) Close() error {
	return s.store.Close()
}
