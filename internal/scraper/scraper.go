package scraper

import (
	"context"
	"fmt"
	"time"

	"hearthstone-scraper/internal/api"
	"hearthstone-scraper/internal/constants"
	"hearthstone-scraper/internal/domain"
	"hearthstone-scraper/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LeaderboardFetcher retrieves one page of leaderboard rows.
type LeaderboardFetcher interface {
	FetchPage(ctx context.Context, region domain.Region, mode domain.GameMode, page int) (*api.LeaderboardResponse, error)
}

// PlayerStore persists one page of snapshots.
type PlayerStore interface {
	InsertBatch(ctx context.Context, players []domain.PlayerSnapshot) error
}

// ScrapeLogStore records the outcome of one sweep.
type ScrapeLogStore interface {
	Insert(ctx context.Context, entry domain.ScrapeLog) error
}

// Scraper performs one full leaderboard sweep: every region and game mode,
// all pages, sequentially, with fixed delays between requests.
type Scraper struct {
	api     LeaderboardFetcher
	players PlayerStore
	logs    ScrapeLogStore
	logger  zerolog.Logger

	pageDelay        time.Duration
	combinationDelay time.Duration
	sleep            func(time.Duration)
}

func New(client *api.Client, players *repository.PlayerRepository, logs *repository.ScrapeLogRepository, logger zerolog.Logger) *Scraper {
	return &Scraper{
		api:              client,
		players:          players,
		logs:             logs,
		logger:           logger,
		pageDelay:        constants.PageDelay,
		combinationDelay: constants.CombinationDelay,
		sleep:            time.Sleep,
	}
}

// AlignToHour truncates t to the top of its hour. All records of one sweep
// share this value even though the sweep itself spans minutes.
func AlignToHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// Run executes one full sweep and records a run-log entry. The returned
// error is only non-nil when a failure escaped the per-combination boundary
// (currently context cancellation); individual page or combination failures
// degrade the status instead.
func (s *Scraper) Run(ctx context.Context) (domain.ScrapeLog, error) {
	runID := uuid.New()
	runTime := AlignToHour(time.Now())

	logger := s.logger.With().Str("run_id", runID.String()).Logger()
	logger.Info().Time("run_time", runTime).Msg("starting leaderboard sweep")

	total := len(domain.Regions) * len(domain.GameModes)
	succeeded := 0
	playersScraped := 0
	var regionsProcessed []domain.Region
	var modesProcessed []domain.GameMode
	var sweepErr error

sweep:
	for _, region := range domain.Regions {
		for _, mode := range domain.GameModes {
			if err := ctx.Err(); err != nil {
				sweepErr = err
				break sweep
			}

			logger.Info().
				Str("region", string(region)).
				Str("game_mode", string(mode)).
				Msg("fetching leaderboard")

			ok, count := s.fetchAndSaveLeaderboard(ctx, region, mode, runTime)
			if ok {
				succeeded++
				playersScraped += count
				regionsProcessed = appendUnique(regionsProcessed, region)
				modesProcessed = appendUnique(modesProcessed, mode)
			}

			s.sleep(s.combinationDelay)
		}
	}

	entry := domain.ScrapeLog{
		RunID:              runID,
		RunTime:            runTime,
		PlayersScraped:     playersScraped,
		RegionsProcessed:   regionsProcessed,
		GameModesProcessed: modesProcessed,
	}
	switch {
	case sweepErr != nil:
		entry.Status = domain.StatusError
		msg := sweepErr.Error()
		entry.ErrorMessage = &msg
	case succeeded == total:
		entry.Status = domain.StatusSuccess
	default:
		entry.Status = domain.StatusPartialSuccess
		msg := fmt.Sprintf("only %d/%d leaderboards completed successfully", succeeded, total)
		entry.ErrorMessage = &msg
	}

	// Best-effort: a failed log write must never turn into a crash, so the
	// error is inspected here and goes no further. WithoutCancel lets the
	// error entry be written even when the sweep died to cancellation.
	if err := s.logs.Insert(context.WithoutCancel(ctx), entry); err != nil {
		logger.Warn().Err(err).Msg("failed to record scrape log, discarding")
	}

	logger.Info().
		Str("status", entry.Status).
		Int("players_scraped", playersScraped).
		Int("succeeded", succeeded).
		Int("total", total).
		Msg("sweep completed")

	return entry, sweepErr
}

// fetchAndSaveLeaderboard walks every page of one region/game-mode
// combination. It reports failure only when the first page is unavailable;
// later pages are skipped on error without unsetting success.
func (s *Scraper) fetchAndSaveLeaderboard(ctx context.Context, region domain.Region, mode domain.GameMode, runTime time.Time) (bool, int) {
	logger := s.logger.With().
		Str("region", string(region)).
		Str("game_mode", string(mode)).
		Logger()

	first, err := s.fetchPage(ctx, region, mode, 1)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch first page")
		return false, 0
	}

	totalPages := 1
	if first.Leaderboard != nil && first.Leaderboard.Pagination != nil {
		if tp := first.Leaderboard.Pagination.TotalPages; tp > 0 {
			totalPages = tp
		}
		logger.Info().
			Int("season_id", first.SeasonID).
			Int("total_pages", totalPages).
			Int("total_players", first.Leaderboard.Pagination.TotalSize).
			Msg("pagination info discovered")
	} else {
		logger.Warn().Msg("no pagination info found, processing first page only")
	}

	saved := 0
	if first.Leaderboard != nil {
		saved += s.savePage(ctx, first.Leaderboard.Rows, region, mode, runTime, 1, logger)
	}

	for page := 2; page <= totalPages; page++ {
		s.sleep(s.pageDelay)

		data, err := s.fetchPage(ctx, region, mode, page)
		if err != nil {
			logger.Warn().Err(err).Int("page", page).Msg("failed to fetch page, skipping")
			continue
		}
		if data.Leaderboard == nil || len(data.Leaderboard.Rows) == 0 {
			logger.Warn().Int("page", page).Msg("no player data found on page")
			continue
		}
		saved += s.savePage(ctx, data.Leaderboard.Rows, region, mode, runTime, page, logger)
	}

	logger.Info().
		Int("players_saved", saved).
		Int("total_pages", totalPages).
		Msg("leaderboard fetch completed")
	return true, saved
}

func (s *Scraper) fetchPage(ctx context.Context, region domain.Region, mode domain.GameMode, page int) (*api.LeaderboardResponse, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, constants.PageFetchTimeout)
	defer cancel()
	return s.api.FetchPage(fetchCtx, region, mode, page)
}

// savePage transforms one page of rows and bulk-inserts them. A failed
// insert contributes zero saved players; the rows are discarded.
func (s *Scraper) savePage(ctx context.Context, rows []api.Row, region domain.Region, mode domain.GameMode, runTime time.Time, page int, logger zerolog.Logger) int {
	if len(rows) == 0 {
		return 0
	}

	snapshots := transformRows(rows, region, mode, runTime)
	if err := s.players.InsertBatch(ctx, snapshots); err != nil {
		logger.Error().Err(err).Int("page", page).Msg("failed to save players")
		return 0
	}

	logger.Debug().Int("page", page).Int("count", len(snapshots)).Msg("players saved")
	return len(snapshots)
}

func transformRows(rows []api.Row, region domain.Region, mode domain.GameMode, runTime time.Time) []domain.PlayerSnapshot {
	snapshots := make([]domain.PlayerSnapshot, len(rows))
	for i, row := range rows {
		snapshots[i] = domain.PlayerSnapshot{
			AccountID: row.AccountID,
			Rank:      row.Rank,
			Rating:    row.Rating,
			Region:    region,
			GameMode:  mode,
			ScrapedAt: runTime,
		}
	}
	return snapshots
}

func appendUnique[T comparable](list []T, v T) []T {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
