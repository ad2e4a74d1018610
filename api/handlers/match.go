package handlers

import (
	"net/http"

	"leaguestats/api/filters"
	matchservice "leaguestats/api/services/match"
	"leaguestats/pkg/apperrors"
	"leaguestats/pkg/messages"

	"github.com/gin-gonic/gin"
)

// MatchHandler is the handler for the match endpoints.
type MatchHandler struct {
	matchService *matchservice.MatchService
}

type MatchHandlerDependencies struct {
	MatchService *matchservice.MatchService
}

// NewMatchHandler creates a new instance of the match handler.
func NewMatchHandler(deps *MatchHandlerDependencies) *MatchHandler {
	return &MatchHandler{
		matchService: deps.MatchService,
	}
}

// PostSync synchronizes the match list of a account.
func (h *MatchHandler) PostSync(c *gin.Context) {
	var body filters.SyncMatchesBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.matchService.SyncMatches(c.Request.Context(), &body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// PostMatches returns the details of every match that could be served.
func (h *MatchHandler) PostMatches(c *gin.Context) {
	var body filters.GetMatchesBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.matchService.GetMatches(c.Request.Context(), filters.NewGetMatchesFilter(&body))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMatch returns a single match detail.
func (h *MatchHandler) GetMatch(c *gin.Context) {
	params, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.GetMatch(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	if match == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": messages.MatchNotFound})
		return
	}

	c.JSON(http.StatusOK, match)
}

// PostRanks refreshes the ranks of a stored match.
func (h *MatchHandler) PostRanks(c *gin.Context) {
	var body filters.MatchRanksBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ranks, err := h.matchService.GetMatchRanks(c.Request.Context(), &body)
	if err != nil {
		respondError(c, err)
		return
	}

	// Not stored yet, there is nothing to enrich.
	if ranks == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, ranks)
}

// Helper to bind the default URI params for matches.
func (h *MatchHandler) bindURIParams(c *gin.Context) (*filters.MatchURIParams, error) {
	var mp filters.MatchURIParams
	if err := c.ShouldBindUri(&mp); err != nil {
		return nil, err
	}
	return &mp, nil
}

func respondError(c *gin.Context, err error) {
	if apperrors.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": messages.MatchNotFound})
		return
	}

	if apperrors.IsStore(err) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": messages.StoreFailureMsg})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
