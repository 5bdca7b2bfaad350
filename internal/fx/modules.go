package fx

import (
	"hearthstone-scraper/internal/api"
	"hearthstone-scraper/internal/config"
	"hearthstone-scraper/internal/database"
	"hearthstone-scraper/internal/logger"
	"hearthstone-scraper/internal/repository"
	"hearthstone-scraper/internal/scraper"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewScrapeLogRepository),
	// api client
	fx.Provide(api.NewClient),
	// sweep
	fx.Provide(scraper.New),
)
