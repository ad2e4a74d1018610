package matchlist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"leaguestats/fetcher/repositories"
	"leaguestats/internal/testutil"
	"leaguestats/pkg/apperrors"
	"leaguestats/pkg/database/models"
	"leaguestats/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var euwAccount = models.Summoner{Puuid: "puuid-1", Region: "EUW"}

func newTestSynchronizer(source *testutil.MockMatchSource, matchList repositories.MatchListRepository, summoners repositories.SummonerRepository) *Synchronizer {
	return NewSynchronizer(&SynchronizerDeps{
		Source:              source,
		MatchListRepository: matchList,
		SummonerRepository:  summoners,
		Logger:              logger.Nop(),
	})
}

// Pages keyed by offset.
func expectPages(source *testutil.MockMatchSource, account models.Summoner, pageSize int, pages map[int]*testutil.OperationResult[[]string]) {
	source.On("PageSize").Return(pageSize)
	for offset, page := range pages {
		source.On("GetMatchIdsPage", mock.Anything, account.Puuid, account.Region, offset).Return(page.Data, page.Err).Once()
	}
}

func TestSync(t *testing.T) {
	tests := []struct {
		name          string
		account       models.Summoner
		known         []string
		pageSize      int
		pages         map[int]*testutil.OperationResult[[]string]
		expectedBatch []string
		appendErr     error
		expected      []string
		expectedErr   bool
	}{
		{
			name:     "stopsonknown",
			account:  euwAccount,
			known:    []string{"EUW_3", "EUW_2"},
			pageSize: 2,
			pages: map[int]*testutil.OperationResult[[]string]{
				0: testutil.NewSuccessResult([]string{"EUW_5", "EUW_4"}),
				2: testutil.NewSuccessResult([]string{"EUW_3", "EUW_2"}),
			},
			expectedBatch: []string{"EUW_4", "EUW_5"},
			expected:      []string{"EUW_5", "EUW_4", "EUW_3", "EUW_2"},
		},
		{
			name:     "stopsonregionchange",
			account:  euwAccount,
			known:    []string{"EUW_1"},
			pageSize: 2,
			pages: map[int]*testutil.OperationResult[[]string]{
				0: testutil.NewSuccessResult([]string{"EUW_9", "NA1_8"}),
			},
			expectedBatch: []string{"NA1_8", "EUW_9"},
			expected:      []string{"EUW_9", "NA1_8", "EUW_1"},
		},
		{
			name:     "regionprefixcaseinsensitive",
			account:  models.Summoner{Puuid: "puuid-1", Region: "euw1"},
			pageSize: 2,
			pages: map[int]*testutil.OperationResult[[]string]{
				0: testutil.NewSuccessResult([]string{"EUW1_4", "EUW1_3"}),
				2: testutil.NewSuccessResult([]string{}),
			},
			expectedBatch: []string{"EUW1_3", "EUW1_4"},
			expected:      []string{"EUW1_4", "EUW1_3"},
		},
		{
			name:     "stopsonemptypage",
			account:  euwAccount,
			pageSize: 2,
			pages: map[int]*testutil.OperationResult[[]string]{
				0: testutil.NewSuccessResult([]string{"EUW_2", "EUW_1"}),
				2: testutil.NewSuccessResult([]string{}),
			},
			expectedBatch: []string{"EUW_1", "EUW_2"},
			expected:      []string{"EUW_2", "EUW_1"},
		},
		{
			name:     "fetcherrorkeepsprogress",
			account:  euwAccount,
			known:    []string{"EUW_1"},
			pageSize: 2,
			pages: map[int]*testutil.OperationResult[[]string]{
				0: testutil.NewSuccessResult([]string{"EUW_5", "EUW_4"}),
				2: testutil.NewErrorResult[[]string]("429 too many requests"),
			},
			expectedBatch: []string{"EUW_4", "EUW_5"},
			expected:      []string{"EUW_5", "EUW_4", "EUW_1"},
		},
		{
			name:     "firstpagefails",
			account:  euwAccount,
			known:    []string{"EUW_1"},
			pageSize: 2,
			pages: map[int]*testutil.OperationResult[[]string]{
				0: testutil.NewErrorResult[[]string]("timeout"),
			},
			expected: []string{"EUW_1"},
		},
		{
			name:     "overlappingpages",
			account:  euwAccount,
			known:    []string{"EUW_3"},
			pageSize: 2,
			pages: map[int]*testutil.OperationResult[[]string]{
				0: testutil.NewSuccessResult([]string{"EUW_5", "EUW_4"}),
				2: testutil.NewSuccessResult([]string{"EUW_4", "EUW_3"}),
			},
			expectedBatch: []string{"EUW_4", "EUW_5"},
			expected:      []string{"EUW_5", "EUW_4", "EUW_3"},
		},
		{
			name:     "nothingnew",
			account:  euwAccount,
			known:    []string{"EUW_5", "EUW_4"},
			pageSize: 2,
			pages: map[int]*testutil.OperationResult[[]string]{
				0: testutil.NewSuccessResult([]string{"EUW_5", "EUW_4"}),
			},
			expected: []string{"EUW_5", "EUW_4"},
		},
		{
			name:     "storeerror",
			account:  euwAccount,
			pageSize: 2,
			pages: map[int]*testutil.OperationResult[[]string]{
				0: testutil.NewSuccessResult([]string{"EUW_2", "EUW_1"}),
				2: testutil.NewSuccessResult([]string{}),
			},
			expectedBatch: []string{"EUW_1", "EUW_2"},
			appendErr:     apperrors.Store(errors.New(testutil.DatabaseError), "couldn't append"),
			expectedErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := new(testutil.MockMatchSource)
			matchList := new(testutil.MockMatchListRepository)

			expectPages(source, tt.account, tt.pageSize, tt.pages)
			if tt.expectedBatch != nil {
				matchList.On("AppendBatch", mock.Anything, tt.account.Puuid, tt.expectedBatch).Return(tt.appendErr)
			}

			synchronizer := newTestSynchronizer(source, matchList, nil)
			result, err := synchronizer.Sync(context.Background(), tt.account, tt.known)

			if tt.expectedErr {
				assert.Error(t, err)
				assert.True(t, apperrors.IsStore(err))
				assert.Contains(t, err.Error(), testutil.DatabaseError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			if tt.expectedBatch == nil {
				matchList.AssertNotCalled(t, "AppendBatch", mock.Anything, mock.Anything, mock.Anything)
			}
			testutil.VerifyAllMocks(t, source, matchList)
		})
	}
}

func TestSyncInvalidPageSize(t *testing.T) {
	source := new(testutil.MockMatchSource)
	source.On("PageSize").Return(0)

	synchronizer := newTestSynchronizer(source, new(testutil.MockMatchListRepository), nil)
	result, err := synchronizer.Sync(context.Background(), euwAccount, nil)

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestSyncAccount(t *testing.T) {
	syncTime := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	source := new(testutil.MockMatchSource)
	matchList := new(testutil.MockMatchListRepository)
	summoners := new(testutil.MockSummonerRepository)

	summoners.On("Upsert", mock.Anything, &euwAccount).Return(nil)
	matchList.On("ListKnown", mock.Anything, "puuid-1").Return([]string{"EUW_3", "EUW_2"}, nil)
	expectPages(source, euwAccount, 2, map[int]*testutil.OperationResult[[]string]{
		0: testutil.NewSuccessResult([]string{"EUW_5", "EUW_4"}),
		2: testutil.NewSuccessResult([]string{"EUW_3", "EUW_2"}),
	})
	matchList.On("AppendBatch", mock.Anything, "puuid-1", []string{"EUW_4", "EUW_5"}).Return(nil)
	summoners.On("SetSynced", mock.Anything, "puuid-1", syncTime).Return(nil)

	synchronizer := newTestSynchronizer(source, matchList, summoners)
	synchronizer.now = func() time.Time { return syncTime }

	result, err := synchronizer.SyncAccount(context.Background(), euwAccount)
	require.NoError(t, err)
	assert.Equal(t, []string{"EUW_5", "EUW_4", "EUW_3", "EUW_2"}, result.MatchIds)
	assert.Equal(t, []string{"EUW_5", "EUW_4"}, result.NewMatchIds)

	testutil.VerifyAllMocks(t, source, matchList, summoners)
}

func TestSyncAccountStoreErrors(t *testing.T) {
	storeErr := apperrors.Store(errors.New(testutil.DatabaseError), "couldn't reach")

	t.Run("upsert", func(t *testing.T) {
		summoners := new(testutil.MockSummonerRepository)
		summoners.On("Upsert", mock.Anything, mock.Anything).Return(storeErr)

		synchronizer := newTestSynchronizer(new(testutil.MockMatchSource), new(testutil.MockMatchListRepository), summoners)
		result, err := synchronizer.SyncAccount(context.Background(), euwAccount)

		assert.True(t, apperrors.IsStore(err))
		assert.Nil(t, result)
	})

	t.Run("listknown", func(t *testing.T) {
		summoners := new(testutil.MockSummonerRepository)
		matchList := new(testutil.MockMatchListRepository)
		summoners.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		matchList.On("ListKnown", mock.Anything, "puuid-1").Return([]string(nil), storeErr)

		synchronizer := newTestSynchronizer(new(testutil.MockMatchSource), matchList, summoners)
		result, err := synchronizer.SyncAccount(context.Background(), euwAccount)

		assert.True(t, apperrors.IsStore(err))
		assert.Nil(t, result)
	})
}

// Fixed pages served to concurrent synchronizations.
type staticSource struct {
	pages [][]string
}

func (s *staticSource) PageSize() int {
	return 2
}

func (s *staticSource) GetMatchIdsPage(ctx context.Context, puuid string, region string, offset int) ([]string, error) {
	index := offset / 2
	if index >= len(s.pages) {
		return []string{}, nil
	}
	return s.pages[index], nil
}

func TestSyncIdempotentAgainstDatabase(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	matchList := repositories.NewMatchListRepository(db)
	summoners := repositories.NewSummonerRepository(db)
	source := &staticSource{pages: [][]string{{"EUW_6", "EUW_5"}, {"EUW_4", "EUW_3"}, {"EUW_2", "EUW_1"}}}

	synchronizer := NewSynchronizer(&SynchronizerDeps{
		Source:              source,
		MatchListRepository: matchList,
		SummonerRepository:  summoners,
		Logger:              logger.Nop(),
	})

	// Concurrent callers for the same account.
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := synchronizer.SyncAccount(context.Background(), euwAccount)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	known, err := matchList.ListKnown(context.Background(), euwAccount.Puuid)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"EUW_6", "EUW_5", "EUW_4", "EUW_3", "EUW_2", "EUW_1"}, known)

	// A second run with nothing new adds no rows.
	result, err := synchronizer.SyncAccount(context.Background(), euwAccount)
	require.NoError(t, err)
	assert.Empty(t, result.NewMatchIds)

	again, err := matchList.ListKnown(context.Background(), euwAccount.Puuid)
	require.NoError(t, err)
	assert.Equal(t, known, again)
}
