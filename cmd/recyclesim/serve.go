package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/go-theft-auto/recycler/metrics"
)

func newServeCommand() *cobra.Command {
	var (
		addr     string
		interval time.Duration
		maxStep  float32
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Random-walk a view and serve its counters on /metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			sim, err := newSimulator(cfg, nil)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(metrics.NewCollector("sim", sim.r))
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler(reg))
			srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					errc <- err
					stop()
				}
				close(errc)
			}()
			fmt.Fprintf(cmd.OutOrStdout(), "serving metrics on %s/metrics\n", addr)

			walk(ctx, sim, interval, maxStep)

			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdown); err != nil {
				return err
			}
			return <-errc
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":9090", "listen address")
	cmd.Flags().DurationVar(&interval, "interval", 50*time.Millisecond, "time between scroll steps")
	cmd.Flags().Float32Var(&maxStep, "max-step", 400, "largest scroll distance per step")
	return cmd
}

// walk scrolls by random distances until ctx is done. Scrolling stays on
// this goroutine; scrapes only read the atomic counters.
func walk(ctx context.Context, sim *simulator, interval time.Duration, maxStep float32) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d := (rand.Float32()*2 - 1) * maxStep
			if sim.view.ScrollBy(d) == 0 {
				sim.view.SetScroll(rand.Float32() * sim.view.MaxOffset())
			}
		}
	}
}
