package modules

import (
	"fmt"

	"leaguestats/api/filters"
	"leaguestats/api/handlers"
	"leaguestats/fetcher/pipeline"

	"github.com/gin-gonic/gin"
)

// Module containing the necessary handlers.
type Module struct {
	Router       *gin.Engine
	MatchHandler *handlers.MatchHandler
}

type ModuleDependencies struct {
	Pipeline *pipeline.Pipeline
}

// Create a new module with all the necessary handlers initialized.
func NewModule(deps *ModuleDependencies) (*Module, error) {
	if err := filters.RegisterValidations(); err != nil {
		return nil, fmt.Errorf("couldn't register the validations: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Return the module with all handlers.
	return &Module{
		Router:       router,
		MatchHandler: initializeMatchHandler(deps),
	}, nil
}
