package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"hearthstone-scraper/internal/domain"

	"github.com/rs/zerolog"
)

type ScrapeLogRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewScrapeLogRepository(db *sql.DB, logger zerolog.Logger) *ScrapeLogRepository {
	return &ScrapeLogRepository{db: db, logger: logger}
}

// Insert writes one run-log row. The processed sets are stored as JSON arrays.
func (r *ScrapeLogRepository) Insert(ctx context.Context, entry domain.ScrapeLog) error {
	regions, err := json.Marshal(entry.RegionsProcessed)
	if err != nil {
		return fmt.Errorf("failed to encode regions: %w", err)
	}
	modes, err := json.Marshal(entry.GameModesProcessed)
	if err != nil {
		return fmt.Errorf("failed to encode game modes: %w", err)
	}

	const query = `
		INSERT INTO scraping_logs
			(run_id, run_time, players_scraped, regions_processed, game_modes_processed, status, error_message)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		entry.RunID,
		entry.RunTime,
		entry.PlayersScraped,
		string(regions),
		string(modes),
		entry.Status,
		entry.ErrorMessage,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("status", entry.Status).Msg("failed to insert scrape log")
		return fmt.Errorf("failed to insert scrape log: %w", err)
	}

	r.logger.Debug().
		Str("status", entry.Status).
		Int("players_scraped", entry.PlayersScraped).
		Msg("scrape log inserted")
	return nil
}
