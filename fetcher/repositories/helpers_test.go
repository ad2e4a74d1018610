package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"leaguestats/pkg/database/models"
)

var fixedDate = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// Build a small stored match for the given id.
func newDetailedMatch(region string, gameId int64) *models.DetailedMatch {
	match := &models.DetailedMatch{
		GameId:       gameId,
		Region:       region,
		MatchId:      fmt.Sprintf("%s_%d", region, gameId),
		MapId:        11,
		MapName:      "Summoner's Rift",
		QueueId:      420,
		GameMode:     "Ranked Solo/Duo",
		GameCreation: fixedDate,
		GameDuration: 1800,
		GameVersion:  "14.1.1",
	}

	match.SetTeams(
		models.Team{TeamId: models.BlueTeamId, Color: "Blue", Win: true, Players: []models.Participant{{Puuid: "blue-1", TeamId: models.BlueTeamId}}},
		models.Team{TeamId: models.RedTeamId, Color: "Red", Players: []models.Participant{{Puuid: "red-1", TeamId: models.RedTeamId}}},
	)

	return match
}

// Clear the fields the database fills, to compare with the fixtures.
func normalizeMatch(match *models.DetailedMatch) {
	match.ID = 0
	match.CreatedAt = time.Time{}
	match.UpdatedAt = time.Time{}
	match.GameCreation = match.GameCreation.UTC()
}

// Seed the given matches.
func seedMatches(t *testing.T, repository DetailRepository, matches ...*models.DetailedMatch) {
	t.Helper()

	for _, match := range matches {
		if err := repository.Create(context.Background(), match); err != nil {
			t.Fatalf("couldn't seed match %s: %v", match.MatchId, err)
		}
	}
}
