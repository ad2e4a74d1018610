package testutil

import (
	"context"
	"fmt"

	"leaguestats/fetcher/services/matchlist"
	"leaguestats/pkg/database/models"

	"github.com/stretchr/testify/mock"
)

// ============================================================================
// Mock Implementations used on the match service and handler tests.
// ============================================================================

type MockSynchronizer struct {
	mock.Mock
}

func (m *MockSynchronizer) SyncAccount(ctx context.Context, account models.Summoner) (*matchlist.SyncResult, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(*matchlist.SyncResult), args.Error(1)
}

type MockDetailReader struct {
	mock.Mock
}

func (m *MockDetailReader) GetMatches(ctx context.Context, region string, matchIds []string) ([]models.DetailedMatch, error) {
	args := m.Called(ctx, region, matchIds)
	return args.Get(0).([]models.DetailedMatch), args.Error(1)
}

func (m *MockDetailReader) GetMatch(ctx context.Context, region string, gameId int64) (*models.DetailedMatch, error) {
	args := m.Called(ctx, region, gameId)
	return args.Get(0).(*models.DetailedMatch), args.Error(1)
}

type MockRankEnricher struct {
	mock.Mock
}

func (m *MockRankEnricher) EnrichMatch(ctx context.Context, gameId int64, region string) (*models.DetailedMatch, error) {
	args := m.Called(ctx, gameId, region)
	return args.Get(0).(*models.DetailedMatch), args.Error(1)
}

// NewMatch builds a stored match with one player per team.
func NewMatch(gameId int64, region string) *models.DetailedMatch {
	match := &models.DetailedMatch{
		GameId:   gameId,
		Region:   region,
		MatchId:  fmt.Sprintf("%s_%d", region, gameId),
		MapId:    11,
		MapName:  "Summoner's Rift",
		QueueId:  420,
		GameMode: "Ranked Solo/Duo",
	}

	match.SetTeams(
		models.Team{TeamId: models.BlueTeamId, Color: "blue", Win: true, Players: []models.Participant{{Puuid: "blue-0", TeamId: models.BlueTeamId}}},
		models.Team{TeamId: models.RedTeamId, Color: "red", Players: []models.Participant{{Puuid: "red-0", TeamId: models.RedTeamId}}},
	)

	return match
}
