package testutil

import (
	"context"
	"time"

	matchfetcher "leaguestats/fetcher/data/match"
	"leaguestats/pkg/database/models"

	"github.com/stretchr/testify/mock"
)

// ============================================================================
// Riot API sources.
// ============================================================================

type MockMatchSource struct {
	mock.Mock
}

func (m *MockMatchSource) PageSize() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockMatchSource) GetMatchIdsPage(ctx context.Context, puuid string, region string, offset int) ([]string, error) {
	args := m.Called(ctx, puuid, region, offset)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMatchSource) GetMatchData(ctx context.Context, matchId string, region string) (*matchfetcher.MatchData, error) {
	args := m.Called(ctx, matchId, region)
	return args.Get(0).(*matchfetcher.MatchData), args.Error(1)
}

type MockRankSource struct {
	mock.Mock
}

func (m *MockRankSource) GetSoloQueueRank(ctx context.Context, puuid string, region string) (*models.RankSnapshot, error) {
	args := m.Called(ctx, puuid, region)
	return args.Get(0).(*models.RankSnapshot), args.Error(1)
}

// ============================================================================
// Repositories.
// ============================================================================

type MockMatchListRepository struct {
	mock.Mock
}

func (m *MockMatchListRepository) ListKnown(ctx context.Context, puuid string) ([]string, error) {
	args := m.Called(ctx, puuid)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMatchListRepository) AppendBatch(ctx context.Context, puuid string, matchIds []string) error {
	args := m.Called(ctx, puuid, matchIds)
	return args.Error(0)
}

type MockDetailRepository struct {
	mock.Mock
}

func (m *MockDetailRepository) Create(ctx context.Context, match *models.DetailedMatch) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockDetailRepository) Get(ctx context.Context, gameId int64, region string) (*models.DetailedMatch, error) {
	args := m.Called(ctx, gameId, region)
	return args.Get(0).(*models.DetailedMatch), args.Error(1)
}

func (m *MockDetailRepository) GetByMatchId(ctx context.Context, matchId string) (*models.DetailedMatch, error) {
	args := m.Called(ctx, matchId)
	return args.Get(0).(*models.DetailedMatch), args.Error(1)
}

func (m *MockDetailRepository) GetMany(ctx context.Context, matchIds []string) ([]models.DetailedMatch, error) {
	args := m.Called(ctx, matchIds)
	return args.Get(0).([]models.DetailedMatch), args.Error(1)
}

func (m *MockDetailRepository) UpdateRanks(ctx context.Context, match *models.DetailedMatch) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

type MockSummonerRepository struct {
	mock.Mock
}

func (m *MockSummonerRepository) ListStale(ctx context.Context, before time.Time, limit int) ([]models.Summoner, error) {
	args := m.Called(ctx, before, limit)
	return args.Get(0).([]models.Summoner), args.Error(1)
}

func (m *MockSummonerRepository) SetSynced(ctx context.Context, puuid string, at time.Time) error {
	args := m.Called(ctx, puuid, at)
	return args.Error(0)
}

func (m *MockSummonerRepository) Upsert(ctx context.Context, summoner *models.Summoner) error {
	args := m.Called(ctx, summoner)
	return args.Error(0)
}

// ============================================================================
// Cache.
// ============================================================================

type MockCacheClient struct {
	mock.Mock
}

func (m *MockCacheClient) MGet(ctx context.Context, keys ...string) ([]any, error) {
	args := m.Called(ctx, keys)
	return args.Get(0).([]any), args.Error(1)
}

func (m *MockCacheClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}
