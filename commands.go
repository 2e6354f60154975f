package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"starwarsApi/models"
	"starwarsApi/store"
)

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "starwarsApi",
		Short:        "Star Wars catalog and favorites API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the JSON config file (default "+DefaultConfigFile+")")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd.Context(), configPath)
			},
		},
		newConfigCommand(&configPath),
		&cobra.Command{
			Use:   "seed <file>",
			Short: "Load catalog rows from a JSON file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSeed(cmd.Context(), configPath, args[0])
			},
		},
	)

	return root
}

func newConfigCommand(path *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the service configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := writeDefaultConfig(*path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath(*path))
			return nil
		},
	})

	return cmd
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := LoadConfig(configPath)

	if err != nil {
		return err
	}

	log := NewLogger(cfg.Log, os.Stderr)

	db, err := SetupDatabaseConnection(cfg.Database)

	if err != nil {
		log.Error().Err(err).Msg("failed to set up database")
		return err
	}

	st := store.New(db, store.WithLogger(log))

	api := &Api{
		Config: cfg,
		Store:  st,
		Tokens: NewTokenIssuer(cfg.Jwt),
		Log:    log,
	}

	if cfg.Redis.Enabled {
		redis := SetupRedisConnection(cfg.Redis)
		defer redis.Close()

		api.Cache = NewCatalogCache(redis.Client, cacheTtl(cfg.Redis), log)
		api.Search = NewSearchIndex(redis, st, log)

		if err := api.Search.RebuildAsync(ctx); err != nil && !errors.Is(err, ErrAlreadyRebuilding) {
			log.Warn().Err(err).Msg("failed to start search index rebuild")
		}
	}

	app := NewApp(api)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")

		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Int("port", cfg.Port).Bool("redis", cfg.Redis.Enabled).Msg("listening")

	return app.Listen(fmt.Sprintf(":%d", cfg.Port))
}

type SeedFile struct {
	Characters []models.Character `json:"characters"`
	Planets    []models.Planet    `json:"planets"`
	Vehicles   []models.Vehicle   `json:"vehicles"`
}

func runSeed(ctx context.Context, configPath, path string) error {
	cfg, err := LoadConfig(configPath)

	if err != nil {
		return err
	}

	log := NewLogger(cfg.Log, os.Stderr)

	data, err := os.ReadFile(path)

	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seed SeedFile

	if err := sonic.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("decode seed file: %w", err)
	}

	db, err := SetupDatabaseConnection(cfg.Database)

	if err != nil {
		return err
	}

	return seedCatalog(ctx, store.New(db), &seed, log)
}

func seedCatalog(ctx context.Context, st *store.Store, seed *SeedFile, log zerolog.Logger) error {
	characters, err := store.Seed(ctx, st, seed.Characters)

	if err != nil {
		return err
	}

	planets, err := store.Seed(ctx, st, seed.Planets)

	if err != nil {
		return err
	}

	vehicles, err := store.Seed(ctx, st, seed.Vehicles)

	if err != nil {
		return err
	}

	log.Info().
		Int64("characters", characters).
		Int64("planets", planets).
		Int64("vehicles", vehicles).
		Msg("seeded catalog")

	return nil
}
