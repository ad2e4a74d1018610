package repositories

import (
	"context"
	"sync"
	"testing"

	"leaguestats/internal/testutil"
	"leaguestats/pkg/apperrors"
	"leaguestats/pkg/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewDetailRepository(t *testing.T) {
	repository := NewDetailRepository(&gorm.DB{})
	assert.NotNil(t, repository)
}

func TestDetailGet(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewDetailRepository(db)
	seedMatches(t, repository, newDetailedMatch("EUW1", 1), newDetailedMatch("NA1", 1))

	tests := []struct {
		name     string
		gameId   int64
		region   string
		expected *models.DetailedMatch
	}{
		{name: "existent", gameId: 1, region: "EUW1", expected: newDetailedMatch("EUW1", 1)},
		{name: "lowercaseregion", gameId: 1, region: "na1", expected: newDetailedMatch("NA1", 1)},
		{name: "nonexistent", gameId: 2, region: "EUW1", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := repository.Get(context.Background(), tt.gameId, tt.region)
			require.NoError(t, err)

			if tt.expected == nil {
				assert.Nil(t, result)
				return
			}

			normalizeMatch(result)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDetailGetMany(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewDetailRepository(db)
	seedMatches(t, repository, newDetailedMatch("EUW1", 1), newDetailedMatch("EUW1", 2))

	result, err := repository.GetMany(context.Background(), []string{"EUW1_1", "EUW1_2", "EUW1_3"})
	require.NoError(t, err)
	assert.Len(t, result, 2)

	byId, err := repository.GetByMatchId(context.Background(), "EUW1_2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), byId.GameId)

	missing, err := repository.GetByMatchId(context.Background(), "EUW1_3")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDetailCreateDuplicate(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewDetailRepository(db)
	seedMatches(t, repository, newDetailedMatch("EUW1", 1))

	err := repository.Create(context.Background(), newDetailedMatch("EUW1", 1))
	assert.True(t, apperrors.IsDuplicate(err))
	assert.False(t, apperrors.IsStore(err))
}

func TestDetailConcurrentCreate(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewDetailRepository(db)

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repository.Create(context.Background(), newDetailedMatch("EUW1", 9))
		}()
	}
	wg.Wait()
	close(errs)

	created, duplicates := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			created++
		case apperrors.IsDuplicate(err):
			duplicates++
		}
	}

	assert.Equal(t, 1, created)
	assert.Equal(t, 4, duplicates)
}

func TestDetailUpdateRanks(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewDetailRepository(db)
	match := newDetailedMatch("EUW1", 1)
	seedMatches(t, repository, match)

	blue, red := match.Teams()
	blue.Players[0].Rank = &models.RankSnapshot{Tier: "GOLD", Division: "II", LeaguePoints: 10, ShortName: "G2"}
	match.SetTeams(blue, red)

	require.NoError(t, repository.UpdateRanks(context.Background(), match))

	stored, err := repository.Get(context.Background(), 1, "EUW1")
	require.NoError(t, err)
	storedBlue, storedRed := stored.Teams()
	assert.Equal(t, "G2", storedBlue.Players[0].Rank.ShortName)
	assert.Nil(t, storedRed.Players[0].Rank)
	assert.Equal(t, "Summoner's Rift", stored.MapName)

	err = repository.UpdateRanks(context.Background(), newDetailedMatch("EUW1", 404))
	assert.True(t, apperrors.IsNotFound(err))
	assert.False(t, apperrors.IsStore(err))
}

func TestDetailStoreUnavailable(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewDetailRepository(db)
	testutil.CloseDB(db)

	result, err := repository.Get(context.Background(), 1, "EUW1")
	assert.True(t, apperrors.IsStore(err))
	assert.Nil(t, result)

	many, err := repository.GetMany(context.Background(), []string{"EUW1_1"})
	assert.True(t, apperrors.IsStore(err))
	assert.Nil(t, many)

	err = repository.Create(context.Background(), newDetailedMatch("EUW1", 1))
	assert.True(t, apperrors.IsStore(err))
}
