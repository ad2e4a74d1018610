package filters

import (
	"fmt"
	"unicode"

	"leaguestats/pkg/regions"
)

// Body of the match list synchronization.
type SyncMatchesBody struct {
	Puuid  string `json:"puuid" binding:"required"`
	Region string `json:"region" binding:"required,region"`
}

// Body of the detail retrieval.
type GetMatchesBody struct {
	Region   string   `json:"region" binding:"required,region"`
	MatchIds []string `json:"matchIds" binding:"required,min=1,max=100,dive,required"`
}

// URI params for a single match.
type MatchURIParams struct {
	Region string `uri:"region" binding:"required,region"`
	GameId int64  `uri:"gameId" binding:"required,min=1"`
}

// Body of the rank enrichment.
type MatchRanksBody struct {
	GameId int64  `json:"gameId" binding:"required,min=1"`
	Region string `json:"region" binding:"required,region"`
}

type GetMatchesFilter struct {
	Region   string
	MatchIds []string
}

// NewGetMatchesFilter prefixes the purely numeric ids with the upper-cased platform code
// and upper-cases the region of the prefixed ones.
func NewGetMatchesFilter(body *GetMatchesBody) *GetMatchesFilter {
	region := regions.Normalize(body.Region)

	matchIds := make([]string, 0, len(body.MatchIds))
	for _, matchId := range body.MatchIds {
		if isNumeric(matchId) {
			matchId = fmt.Sprintf("%s_%s", region, matchId)
		}
		matchId = regions.CanonicalMatchId(matchId)
		matchIds = append(matchIds, matchId)
	}

	return &GetMatchesFilter{
		Region:   region,
		MatchIds: matchIds,
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
