package main

import (
	"context"
	"database/sql"

	"hearthstone-scraper/internal/config"
	"hearthstone-scraper/internal/domain"
	fxmodules "hearthstone-scraper/internal/fx"
	applogger "hearthstone-scraper/internal/logger"
	"hearthstone-scraper/internal/scraper"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runSweep),
	).Run()
}

// runSweep performs exactly one full sweep and shuts the process down with
// an exit code reflecting the outcome: 0 success, 1 partial, 2 error.
func runSweep(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	s *scraper.Scraper,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	logger = applogger.SetLevel(logger, cfg.LogLevel)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				entry, err := s.Run(context.Background())
				if err != nil {
					logger.Error().Err(err).Msg("sweep aborted")
				}

				logger.Info().
					Str("status", entry.Status).
					Int("players_scraped", entry.PlayersScraped).
					Int("regions_processed", len(entry.RegionsProcessed)).
					Int("game_modes_processed", len(entry.GameModesProcessed)).
					Msg("scrape run finished")

				if err := shutdowner.Shutdown(fx.ExitCode(exitCode(entry.Status))); err != nil {
					logger.Error().Err(err).Msg("failed to shut down")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}
			return nil
		},
	})
}

func exitCode(status string) int {
	switch status {
	case domain.StatusSuccess:
		return 0
	case domain.StatusPartialSuccess:
		return 1
	default:
		return 2
	}
}
