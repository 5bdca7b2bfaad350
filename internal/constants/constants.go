package constants

import "time"

const (
	// PageFetchTimeout bounds a single leaderboard page request.
	PageFetchTimeout = 30 * time.Second

	// PageDelay separates successive page requests within one combination.
	PageDelay = 1 * time.Second

	// CombinationDelay separates region/game-mode combinations within a sweep.
	CombinationDelay = 2 * time.Second
)

const (
	DBMaxOpenConns    = 4
	DBMaxIdleConns    = 2
	DBConnMaxLifetime = 30 * time.Minute
)

const (
	LeaderboardEndpoint = "https://hearthstone.blizzard.com/en-us/api/community/leaderboardsData"

	// The endpoint rejects requests without a browser user agent.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)
