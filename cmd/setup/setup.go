package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/JonMunkholm/petition/internal/config"
	"github.com/JonMunkholm/petition/internal/core"
	"github.com/JonMunkholm/petition/internal/logging"
	"github.com/JonMunkholm/petition/internal/seed"
	"github.com/JonMunkholm/petition/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type options struct {
	drop     bool
	seedFile string
	noSeed   bool
}

// schemaStore is the part of *store.Store that setup drives.
type schemaStore interface {
	core.Store
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error
}

func newCommand() *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:           "setup",
		Short:         "Create the signatures table and load sample signatures.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Overload()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

			poolConfig, err := store.PoolConfig(cfg.Database, cfg.App)
			if err != nil {
				return err
			}
			pool, err := store.Open(cmd.Context(), poolConfig)
			if err != nil {
				return err
			}
			defer pool.Close()

			return run(cmd.Context(), store.New(pool), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.drop, "drop", true, "drop the signatures table before creating it")
	cmd.Flags().StringVar(&opts.seedFile, "seed", "", "YAML file with seed signatures (default: built-in samples)")
	cmd.Flags().BoolVar(&opts.noSeed, "no-seed", false, "do not load seed signatures")
	cmd.MarkFlagsMutuallyExclusive("seed", "no-seed")

	return cmd
}

func run(ctx context.Context, st schemaStore, opts options) error {
	if opts.drop {
		if err := st.DropSchema(ctx); err != nil {
			return err
		}
		slog.Info("signatures table dropped")
	}

	if err := st.CreateSchema(ctx); err != nil {
		return err
	}
	slog.Info("signatures table created")

	if opts.noSeed {
		return nil
	}

	entries, err := loadEntries(opts.seedFile)
	if err != nil {
		return err
	}

	n, err := seed.Load(ctx, core.NewService(st), entries)
	slog.Info("seed signatures loaded", "count", n, "total", len(entries))
	return err
}

func loadEntries(path string) ([]seed.Entry, error) {
	if path == "" {
		return seed.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return seed.Parse(f)
}
