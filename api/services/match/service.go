package matchservice

import (
	"context"

	"leaguestats/api/dto"
	"leaguestats/api/filters"
	"leaguestats/fetcher/services/matchlist"
	"leaguestats/pkg/database/models"
	"leaguestats/pkg/regions"
)

type AccountSynchronizer interface {
	SyncAccount(ctx context.Context, account models.Summoner) (*matchlist.SyncResult, error)
}

type DetailReader interface {
	GetMatches(ctx context.Context, region string, matchIds []string) ([]models.DetailedMatch, error)
	GetMatch(ctx context.Context, region string, gameId int64) (*models.DetailedMatch, error)
}

type RankEnricher interface {
	EnrichMatch(ctx context.Context, gameId int64, region string) (*models.DetailedMatch, error)
}

// MatchService drives the synchronization, the detail cache and the rank enrichment.
type MatchService struct {
	synchronizer AccountSynchronizer
	details      DetailReader
	ranks        RankEnricher
}

// MatchServiceDeps is the dependency list for the match service.
type MatchServiceDeps struct {
	Synchronizer AccountSynchronizer
	DetailCache  DetailReader
	Enricher     RankEnricher
}

// NewMatchService creates a match service.
func NewMatchService(deps *MatchServiceDeps) *MatchService {
	return &MatchService{
		synchronizer: deps.Synchronizer,
		details:      deps.DetailCache,
		ranks:        deps.Enricher,
	}
}

// SyncMatches reconciles the account match list and returns every known id.
func (ms *MatchService) SyncMatches(ctx context.Context, body *filters.SyncMatchesBody) (*dto.SyncedMatches, error) {
	account := models.Summoner{
		Puuid:  body.Puuid,
		Region: regions.Normalize(body.Region),
	}

	result, err := ms.synchronizer.SyncAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	synced := &dto.SyncedMatches{
		MatchIds:    result.MatchIds,
		NewMatchIds: result.NewMatchIds,
	}
	if synced.MatchIds == nil {
		synced.MatchIds = []string{}
	}
	if synced.NewMatchIds == nil {
		synced.NewMatchIds = []string{}
	}

	return synced, nil
}

// GetMatches returns the details that could be served.
func (ms *MatchService) GetMatches(ctx context.Context, filter *filters.GetMatchesFilter) (*dto.MatchList, error) {
	matches, err := ms.details.GetMatches(ctx, filter.Region, filter.MatchIds)
	if err != nil {
		return nil, err
	}

	if matches == nil {
		matches = []models.DetailedMatch{}
	}

	return &dto.MatchList{Matches: matches}, nil
}

// GetMatch returns a single match, nil when it couldn't be served.
func (ms *MatchService) GetMatch(ctx context.Context, params *filters.MatchURIParams) (*models.DetailedMatch, error) {
	return ms.details.GetMatch(ctx, regions.Normalize(params.Region), params.GameId)
}

// GetMatchRanks refreshes the ranks of a stored match, nil when the match isn't stored.
func (ms *MatchService) GetMatchRanks(ctx context.Context, body *filters.MatchRanksBody) (*dto.MatchRanks, error) {
	match, err := ms.ranks.EnrichMatch(ctx, body.GameId, regions.Normalize(body.Region))
	if err != nil {
		return nil, err
	}

	if match == nil {
		return nil, nil
	}

	return dto.NewMatchRanks(match), nil
}
