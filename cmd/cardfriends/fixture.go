package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/cardfriends/internal/fixture"
)

const shutdownGrace = 5 * time.Second

func newServeFixtureCmd(c *cli) *cobra.Command {
	var (
		addr, data string
		generate   int
		perPage    int
		seed       uint64
	)
	cmd := &cobra.Command{
		Use:   "serve-fixture",
		Short: "Serve a local reqres-compatible users API",
		Long: `Serves GET /api/users?page=N from a YAML dataset (the built-in one by
default) so the friends list can run without network access:

  cardfriends serve-fixture &
  cardfriends --endpoint http://127.0.0.1:8089/api/users --start facebook`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Fixture.Addr
			}
			if data == "" {
				data = c.cfg.Fixture.Data
			}
			ds, err := loadFixture(data, generate, perPage, seed)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serveFixture(ctx, cmd, addr, ds, c.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overriding fixture.addr")
	cmd.Flags().StringVar(&data, "data", "", "YAML dataset, overriding fixture.data")
	cmd.Flags().IntVar(&generate, "generate", 0, "serve N synthetic users instead of a dataset file")
	cmd.Flags().IntVar(&perPage, "per-page", 6, "page size for --generate")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed for --generate")
	return cmd
}

func loadFixture(data string, generate, perPage int, seed uint64) (fixture.Dataset, error) {
	if generate > 0 {
		return fixture.Generate(generate, perPage, seed)
	}
	return fixture.LoadDataset(data)
}

func serveFixture(ctx context.Context, cmd *cobra.Command, addr string, ds fixture.Dataset, log *zap.Logger) error {
	srv := fixture.New(ds, log.Named("fixture"))

	errc := make(chan error, 1)
	go func() { errc <- srv.Listen(addr) }()
	cmd.Printf("serving %d users on http://%s/api/users\n", len(ds.Users), addr)

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("fixture server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown fixture server: %w", err)
	}
	log.Info("fixture server stopped")
	return nil
}
