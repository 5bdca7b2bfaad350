package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"hearthstone-scraper/internal/domain"

	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlayerRepository(db *sql.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{db: db, logger: logger}
}

// InsertBatch writes one page of snapshots in a single multi-row INSERT.
func (r *PlayerRepository) InsertBatch(ctx context.Context, players []domain.PlayerSnapshot) error {
	if len(players) == 0 {
		return nil
	}

	query, args := buildPlayersInsert(players)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error().Err(err).Int("count", len(players)).Msg("failed to insert players")
		return fmt.Errorf("failed to insert players: %w", err)
	}

	r.logger.Debug().Int("count", len(players)).Msg("players inserted")
	return nil
}

func buildPlayersInsert(players []domain.PlayerSnapshot) (string, []any) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO players (account_id, rank, rating, region, game_mode, scraped_at) VALUES ")

	args := make([]any, 0, len(players)*6)
	for i, p := range players {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 6
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5, n+6)
		args = append(args, p.AccountID, p.Rank, p.Rating, string(p.Region), string(p.GameMode), p.ScrapedAt)
	}

	return sb.String(), args
}
