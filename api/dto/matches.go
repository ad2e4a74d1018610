package dto

import "leaguestats/pkg/database/models"

// SyncedMatches is the full known match list of a account after a synchronization.
type SyncedMatches struct {
	MatchIds    []string `json:"matchIds"`
	NewMatchIds []string `json:"newMatchIds"`
}

// MatchList holds every match that could be served, in the requested order.
type MatchList struct {
	Matches []models.DetailedMatch `json:"matches"`
}

// MatchRanks is a match teams after the rank enrichment.
type MatchRanks struct {
	BlueTeam models.Team `json:"blueTeam"`
	RedTeam  models.Team `json:"redTeam"`
}

// NewMatchRanks splits the match teams.
func NewMatchRanks(match *models.DetailedMatch) *MatchRanks {
	blue, red := match.Teams()
	return &MatchRanks{
		BlueTeam: blue,
		RedTeam:  red,
	}
}
