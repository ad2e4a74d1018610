// Package pipeline wires the Riot client, the stores and the match services together.
package pipeline

import (
	"leaguestats/fetcher/regionmanager"
	"leaguestats/fetcher/repositories"
	"leaguestats/fetcher/requests"
	"leaguestats/fetcher/services/matchdetail"
	"leaguestats/fetcher/services/matchlist"
	"leaguestats/fetcher/services/rank"
	"leaguestats/pkg/config"
	"leaguestats/pkg/logger"

	"gorm.io/gorm"
)

// Pipeline holds the services shared by the api and the scheduler.
type Pipeline struct {
	Synchronizer *matchlist.Synchronizer
	DetailCache  *matchdetail.DetailCache
	Enricher     *rank.Enricher
	Summoners    repositories.SummonerRepository
}

type PipelineDeps struct {
	Config *config.Config
	DB     *gorm.DB
	Cache  repositories.DetailCacheClient
	Logger *logger.NewLogger
}

// NewPipeline creates every service over a single rate limited client.
func NewPipeline(deps *PipelineDeps) *Pipeline {
	cfg := deps.Config

	limiter := requests.CreateRateLimiter(cfg.Limits)
	client := requests.NewRiotClient(cfg.ApiKey, limiter)
	manager := regionmanager.NewRegionManager(client)

	summoners := repositories.NewSummonerRepository(deps.DB)

	var details repositories.DetailRepository = repositories.NewDetailRepository(deps.DB)
	if deps.Cache != nil {
		details = repositories.NewCachedDetailRepository(details, deps.Cache, cfg.Redis.DetailTTL, deps.Logger)
	}

	synchronizer := matchlist.NewSynchronizer(&matchlist.SynchronizerDeps{
		Source:              manager,
		MatchListRepository: repositories.NewMatchListRepository(deps.DB),
		SummonerRepository:  summoners,
		Logger:              deps.Logger,
	})

	detailCache := matchdetail.NewDetailCache(&matchdetail.DetailCacheDeps{
		Source:           manager,
		DetailRepository: details,
		Logger:           deps.Logger,
		Workers:          cfg.Fetch.Workers,
		Timeout:          cfg.Fetch.Timeout,
	})

	enricher := rank.NewEnricher(&rank.EnricherDeps{
		Source:           manager,
		DetailRepository: details,
		Logger:           deps.Logger,
		Workers:          cfg.Fetch.Workers,
		Timeout:          cfg.Fetch.Timeout,
	})

	return &Pipeline{
		Synchronizer: synchronizer,
		DetailCache:  detailCache,
		Enricher:     enricher,
		Summoners:    summoners,
	}
}
