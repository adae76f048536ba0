package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/handbook"
	hbhttp "github.com/fwojciec/handbook/http"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// server is asked to stop.
const shutdownTimeout = 10 * time.Second

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", handbook.ErrorMessage(err))
		return err
	}
	return c.Serve(deps, ln)
}

// Serve serves the API on ln until deps.Ctx is canceled.
func (c *ServeCmd) Serve(deps *Dependencies, ln net.Listener) error {
	var limiter *hbhttp.KeyLimiter
	if c.RatePerSecond > 0 {
		limiter = hbhttp.NewKeyLimiter(c.RatePerSecond, c.Burst)
	}

	srv := &http.Server{
		Handler:           hbhttp.NewServer(deps.Asker, limiter, deps.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", ln.Addr())

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", handbook.ErrorMessage(err))
		return err
	}
	return nil
}
