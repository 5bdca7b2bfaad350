package domain

import (
	"time"

	"github.com/google/uuid"
)

type Region string

const (
	RegionEU Region = "EU"
	RegionUS Region = "US"
	RegionAP Region = "AP"
)

// Regions is the fixed sweep order.
var Regions = []Region{RegionEU, RegionUS, RegionAP}

type GameMode string

const (
	ModeBattlegrounds    GameMode = "battlegrounds"
	ModeBattlegroundsDuo GameMode = "battlegroundsduo"
)

var GameModes = []GameMode{ModeBattlegrounds, ModeBattlegroundsDuo}

// PlayerSnapshot is one leaderboard row as stored. Written once per sweep,
// never read back by this program.
type PlayerSnapshot struct {
	AccountID string
	Rank      int
	Rating    int
	Region    Region
	GameMode  GameMode
	ScrapedAt time.Time
}

// Sweep statuses as stored in scraping_logs.status.
const (
	StatusSuccess        = "success"
	StatusPartialSuccess = "partial_success"
	StatusError          = "error"
)

// ScrapeLog is the outcome record of one full sweep.
type ScrapeLog struct {
	RunID              uuid.UUID
	RunTime            time.Time
	PlayersScraped     int
	RegionsProcessed   []Region
	GameModesProcessed []GameMode
	Status             string
	ErrorMessage       *string
}
