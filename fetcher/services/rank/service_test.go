package rank

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"leaguestats/fetcher/repositories"
	"leaguestats/internal/testutil"
	"leaguestats/pkg/apperrors"
	"leaguestats/pkg/database/models"
	"leaguestats/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Build a match with five players per team, named blue-N and red-N.
func newMatch(gameId int64) *models.DetailedMatch {
	match := &models.DetailedMatch{
		GameId:   gameId,
		Region:   "EUW1",
		MatchId:  fmt.Sprintf("EUW1_%d", gameId),
		MapId:    11,
		MapName:  "Summoner's Rift",
		QueueId:  420,
		GameMode: "Ranked Solo/Duo",
	}

	newTeam := func(teamId int, color string) models.Team {
		team := models.Team{TeamId: teamId, Color: color, Bans: []models.Ban{}}
		for i := range 5 {
			team.Players = append(team.Players, models.Participant{
				Puuid:  fmt.Sprintf("%s-%d", color, i),
				TeamId: teamId,
			})
		}
		return team
	}

	match.SetTeams(newTeam(models.BlueTeamId, "blue"), newTeam(models.RedTeamId, "red"))
	return match
}

func newTestEnricher(source RankSource, repository repositories.DetailRepository) *Enricher {
	return NewEnricher(&EnricherDeps{
		Source:           source,
		DetailRepository: repository,
		Logger:           logger.Nop(),
		Workers:          3,
	})
}

var gold = &models.RankSnapshot{Tier: "GOLD", Division: "II", LeaguePoints: 40, ShortName: "G2"}

func TestEnrich(t *testing.T) {
	source := new(testutil.MockRankSource)
	repository := new(testutil.MockDetailRepository)

	source.On("GetSoloQueueRank", mock.Anything, "red-2", "EUW1").
		Return((*models.RankSnapshot)(nil), apperrors.External(errors.New("429"), "couldn't get the league"))
	source.On("GetSoloQueueRank", mock.Anything, "blue-4", "EUW1").Return((*models.RankSnapshot)(nil), nil)
	source.On("GetSoloQueueRank", mock.Anything, mock.Anything, "EUW1").Return(gold, nil)
	repository.On("UpdateRanks", mock.Anything, mock.Anything).Return(nil).Once()

	enricher := newTestEnricher(source, repository)
	match, err := enricher.Enrich(context.Background(), newMatch(1))
	require.NoError(t, err)

	blue, red := match.Teams()
	for _, player := range append(blue.Players, red.Players...) {
		switch player.Puuid {
		case "red-2", "blue-4":
			assert.Nil(t, player.Rank, player.Puuid)
		default:
			assert.Equal(t, gold, player.Rank, player.Puuid)
		}
	}

	source.AssertNumberOfCalls(t, "GetSoloQueueRank", 10)
	testutil.VerifyAllMocks(t, repository)
}

func TestEnrichAllLookupsFail(t *testing.T) {
	source := new(testutil.MockRankSource)
	repository := new(testutil.MockDetailRepository)

	source.On("GetSoloQueueRank", mock.Anything, mock.Anything, mock.Anything).
		Return((*models.RankSnapshot)(nil), apperrors.External(errors.New("timeout"), "couldn't get the league"))
	repository.On("UpdateRanks", mock.Anything, mock.Anything).Return(nil)

	match, err := newTestEnricher(source, repository).Enrich(context.Background(), newMatch(2))
	require.NoError(t, err)

	blue, red := match.Teams()
	for _, player := range append(blue.Players, red.Players...) {
		assert.Nil(t, player.Rank)
	}
}

func TestEnrichOverwritesStaleRanks(t *testing.T) {
	stale := newMatch(3)
	blue, red := stale.Teams()
	for i := range blue.Players {
		blue.Players[i].Rank = &models.RankSnapshot{Tier: "IRON", Division: "IV", ShortName: "I4"}
	}
	stale.SetTeams(blue, red)

	source := new(testutil.MockRankSource)
	repository := new(testutil.MockDetailRepository)
	source.On("GetSoloQueueRank", mock.Anything, mock.Anything, mock.Anything).Return(gold, nil)
	repository.On("UpdateRanks", mock.Anything, mock.Anything).Return(nil)

	match, err := newTestEnricher(source, repository).Enrich(context.Background(), stale)
	require.NoError(t, err)

	blue, _ = match.Teams()
	for _, player := range blue.Players {
		assert.Equal(t, "G2", player.Rank.ShortName)
	}
}

func TestEnrichStoreError(t *testing.T) {
	source := new(testutil.MockRankSource)
	repository := new(testutil.MockDetailRepository)

	source.On("GetSoloQueueRank", mock.Anything, mock.Anything, mock.Anything).Return(gold, nil)
	repository.On("UpdateRanks", mock.Anything, mock.Anything).
		Return(apperrors.Store(errors.New(testutil.DatabaseError), "couldn't update"))

	original := newMatch(4)
	match, err := newTestEnricher(source, repository).Enrich(context.Background(), original)
	assert.Nil(t, match)
	assert.True(t, apperrors.IsStore(err))

	blue, red := original.Teams()
	for _, player := range append(blue.Players, red.Players...) {
		assert.Nil(t, player.Rank, player.Puuid)
	}
}

func TestEnrichMatch(t *testing.T) {
	tests := []struct {
		name        string
		setupMocks  func(source *testutil.MockRankSource, repository *testutil.MockDetailRepository)
		expectMatch bool
		expectedErr bool
	}{
		{
			name: "stored",
			setupMocks: func(source *testutil.MockRankSource, repository *testutil.MockDetailRepository) {
				repository.On("Get", mock.Anything, int64(10), "EUW1").Return(newMatch(10), nil)
				source.On("GetSoloQueueRank", mock.Anything, mock.Anything, "EUW1").Return(gold, nil)
				repository.On("UpdateRanks", mock.Anything, mock.Anything).Return(nil)
			},
			expectMatch: true,
		},
		{
			name: "notstored",
			setupMocks: func(source *testutil.MockRankSource, repository *testutil.MockDetailRepository) {
				repository.On("Get", mock.Anything, int64(10), "EUW1").Return((*models.DetailedMatch)(nil), nil)
			},
		},
		{
			name: "removedbeforeupdate",
			setupMocks: func(source *testutil.MockRankSource, repository *testutil.MockDetailRepository) {
				repository.On("Get", mock.Anything, int64(10), "EUW1").Return(newMatch(10), nil)
				source.On("GetSoloQueueRank", mock.Anything, mock.Anything, "EUW1").Return(gold, nil)
				repository.On("UpdateRanks", mock.Anything, mock.Anything).
					Return(apperrors.NotFound(errors.New("record not found"), "match EUW1_10 is no longer stored"))
			},
		},
		{
			name: "storeerror",
			setupMocks: func(source *testutil.MockRankSource, repository *testutil.MockDetailRepository) {
				repository.On("Get", mock.Anything, int64(10), "EUW1").
					Return((*models.DetailedMatch)(nil), apperrors.Store(errors.New(testutil.DatabaseError), "couldn't get"))
			},
			expectedErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := new(testutil.MockRankSource)
			repository := new(testutil.MockDetailRepository)
			tt.setupMocks(source, repository)

			match, err := newTestEnricher(source, repository).EnrichMatch(context.Background(), 10, "EUW1")

			if tt.expectedErr {
				assert.True(t, apperrors.IsStore(err))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectMatch, match != nil)

			testutil.VerifyAllMocks(t, source, repository)
		})
	}
}

func TestEnrichAgainstDatabase(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := repositories.NewDetailRepository(db)
	require.NoError(t, repository.Create(context.Background(), newMatch(20)))

	source := new(testutil.MockRankSource)
	source.On("GetSoloQueueRank", mock.Anything, mock.Anything, "EUW1").Return(gold, nil)

	enricher := newTestEnricher(source, repository)

	// Running twice leaves the same snapshots.
	for range 2 {
		_, err := enricher.EnrichMatch(context.Background(), 20, "EUW1")
		require.NoError(t, err)
	}

	stored, err := repository.Get(context.Background(), 20, "EUW1")
	require.NoError(t, err)

	blue, red := stored.Teams()
	for _, player := range append(blue.Players, red.Players...) {
		assert.Equal(t, gold, player.Rank)
	}
}
