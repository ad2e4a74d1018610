package modules

import (
	"leaguestats/api/handlers"
	matchservice "leaguestats/api/services/match"
)

func initializeMatchHandler(deps *ModuleDependencies) *handlers.MatchHandler {
	matchDeps := &matchservice.MatchServiceDeps{
		Synchronizer: deps.Pipeline.Synchronizer,
		DetailCache:  deps.Pipeline.DetailCache,
		Enricher:     deps.Pipeline.Enricher,
	}

	matchService := matchservice.NewMatchService(matchDeps)

	matchHandlerDeps := &handlers.MatchHandlerDependencies{
		MatchService: matchService,
	}

	return handlers.NewMatchHandler(matchHandlerDeps)
}
