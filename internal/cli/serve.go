package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hovercard/pkg/bridge"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve preview requests over HTTP",
		Long: `Run the fetch actor behind an HTTP endpoint.

Clients POST getData and getPageOverview messages to /v1/messages and
receive one response per message. "hovercard browse --remote" uses this
endpoint instead of fetching in-process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr from config)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	s, err := c.newStack(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if addr == "" {
		addr = s.cfg.Server.Addr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	actor := s.actor(c.Logger)
	srv := &http.Server{
		Handler:           bridge.NewServer(actor, c.Logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	printSuccess("Serving previews on http://%s", ln.Addr())
	printKeyValue("cache", storeLocation(s.cfg))
	printKeyValue("ttl", s.cfg.Cache.TTL.String())
	printKeyValue("concurrency", strconv.Itoa(s.cfg.Actor.Concurrency))
	if !isLoopback(ln.Addr()) {
		printWarning("Listening beyond loopback; the endpoint has no authentication")
	}

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	actor.Wait()
	return nil
}

func isLoopback(addr net.Addr) bool {
	tcp, ok := addr.(*net.TCPAddr)
	return ok && tcp.IP.IsLoopback()
}
