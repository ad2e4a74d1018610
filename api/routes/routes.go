package routes

import (
	"net/http"

	"leaguestats/api/handlers"
	"leaguestats/api/middleware"
	"leaguestats/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &Router{
		api:    engine.Group("/api/v1"),
		Engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.MatchHandler:
			r.registerMatchHandler(handler)
		}
	}
}

// Register the match handler.
func (r *Router) registerMatchHandler(handler *handlers.MatchHandler) {
	matches := r.api.Group("/matches")
	{
		matches.POST("", handler.PostMatches)
		matches.POST("/sync", handler.PostSync)
		matches.POST("/ranks", handler.PostRanks)
		matches.GET("/:region/:gameId", handler.GetMatch)
	}
}

// Handler wraps the engine with the request ids and the CORS policy.
func (r *Router) Handler(log *logger.NewLogger) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	return middleware.RequestID(log)(c.Handler(r.Engine))
}
