// Command importer loads pokemon into the catalog store.
//
// Usage:
//
//	pokedex-importer seed --file data/pokemons.json
//	pokedex-importer pokemon pikachu 1 mew --workers 8
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/pokedex-api/internal/app"
	"github.com/riskibarqy/pokedex-api/internal/config"
	"github.com/riskibarqy/pokedex-api/internal/platform/logging"
	"github.com/riskibarqy/pokedex-api/internal/usecase"
)

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "pokedex-importer",
		Short:         "Pokedex catalog import CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(seedCmd())
	root.AddCommand(pokemonCmd())

	if err := root.Execute(); err != nil {
		logging.Default().Error("importer failed", "error", err)
		_ = logging.Default().Sync()
		os.Exit(1)
	}
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the catalog with the records in a seed file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(func(ctx context.Context, cfg config.Config, svc *usecase.ImportService, logger *logging.Logger) error {
				path := file
				if path == "" {
					path = cfg.SeedFile
				}

				items, err := app.LoadSeed(path, logger)
				if err != nil {
					return err
				}

				start := time.Now()
				count, err := svc.ImportSeed(ctx, items)
				if err != nil {
					return fmt.Errorf("import seed: %w", err)
				}
				logger.Info("seed import finished",
					"file", path,
					"pokemons", count,
					"duration", time.Since(start).Round(time.Millisecond).String(),
				)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Seed file path (defaults to SEED_FILE)")
	return cmd
}

func pokemonCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "pokemon <name-or-id>...",
		Short: "Fetch pokemon from PokeAPI and upsert them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(func(ctx context.Context, cfg config.Config, svc *usecase.ImportService, logger *logging.Logger) error {
				if workers <= 0 {
					workers = cfg.ImportWorkers
				}

				result, err := svc.ImportFromSource(ctx, usecase.ImportFromSourceInput{
					Refs:    args,
					Workers: workers,
				})
				if err != nil {
					return fmt.Errorf("import from pokeapi: %w", err)
				}

				for _, ref := range result.Refs {
					if ref.Status != usecase.ImportStatusImported {
						logger.Warn("pokemon not imported", "ref", ref.Ref, "status", ref.Status, "message", ref.Message)
					}
				}
				logger.Info("pokeapi import finished",
					"workers", result.WorkerCount,
					"imported", result.ImportedCount,
					"failed", result.FailedCount,
				)

				enc := sonic.ConfigDefault.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			})
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent fetches (defaults to IMPORT_WORKERS)")
	return cmd
}

func runImport(fn func(ctx context.Context, cfg config.Config, svc *usecase.ImportService, logger *logging.Logger) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "component", "importer")
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("memory storage selected, imported records are discarded on exit")
	}

	repos, err := app.OpenRepositories(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open repositories: %w", err)
	}
	defer func() {
		_ = repos.Close()
	}()

	return fn(ctx, cfg, app.NewImportService(cfg, repos, logger), logger)
}
