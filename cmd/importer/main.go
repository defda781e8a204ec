package main

import (
	"context"
	"flag"
	"os"

	"forecast-locator-api/internal/config"
	"forecast-locator-api/internal/repository"
	"forecast-locator-api/internal/resolver"
	"forecast-locator-api/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	file := flag.String("file", "", "Path to a CSV file whose first column holds ZIP codes")
	flag.Parse()

	if *file == "" {
		log.Fatal().Msg("--file flag is required")
	}

	_ = godotenv.Load()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	log.Logger = cfg.Logger()

	if cfg.DBSource == "" {
		log.Fatal().Msg("DB_SOURCE is required")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("cannot open file")
	}
	zipCodes, err := parseZipCSV(f)
	_ = f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse CSV")
	}
	log.Info().Int("zip_codes", len(zipCodes)).Str("file", *file).Msg("parsed ZIP codes")

	ctx := log.Logger.WithContext(context.Background())

	conn, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	repo := repository.NewRepository(conn)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot create schema")
	}

	locationResolver := resolver.New(resolver.Config{
		UserAgent:     cfg.UserAgent,
		Timeout:       cfg.RequestTimeout,
		ZipBaseURL:    cfg.ZipBaseURL,
		PointsBaseURL: cfg.PointsBaseURL,
	})

	// Recording happens in one batch below, so the service gets no repository.
	summary := resolveAll(ctx, service.NewZipPointService(locationResolver, nil), zipCodes)

	if err := repo.UpsertZipPoints(ctx, summary.Resolved); err != nil {
		log.Fatal().Err(err).Msg("cannot store resolved ZIP codes")
	}

	log.Info().
		Int("resolved", len(summary.Resolved)).
		Int("failed", len(summary.Failed)).
		Msg("import finished")

	if len(summary.Resolved) == 0 {
		os.Exit(1)
	}
}
