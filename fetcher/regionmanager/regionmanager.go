package regionmanager

import (
	"context"
	"fmt"

	league_fetcher "leaguestats/fetcher/data/league"
	matchfetcher "leaguestats/fetcher/data/match"
	"leaguestats/fetcher/requests"
	"leaguestats/pkg/apperrors"
	"leaguestats/pkg/database/models"
	"leaguestats/pkg/regions"
)

// Define the region manager.
// Routes each call to the fetcher of the host that serves the region.
type RegionManager struct {
	// Match-v5 is served by the main regions.
	matchFetchers map[regions.MainRegion]*matchfetcher.Match_fetcher

	// League-v4 is served by the platforms.
	leagueFetchers map[regions.SubRegion]*league_fetcher.League_Fetcher
}

// Create a region manager for the RiotAPI and populate it.
func NewRegionManager(client *requests.RiotClient) *RegionManager {
	manager := &RegionManager{
		matchFetchers:  make(map[regions.MainRegion]*matchfetcher.Match_fetcher),
		leagueFetchers: make(map[regions.SubRegion]*league_fetcher.League_Fetcher),
	}

	// Loop through each region and populate it.
	for mainRegion, subRegions := range regions.RegionList {
		manager.matchFetchers[mainRegion] = matchfetcher.CreateMatchFetcher(client, string(mainRegion))

		for _, subRegion := range subRegions {
			manager.leagueFetchers[subRegion] = league_fetcher.CreateLeagueFetcher(client, string(subRegion))
		}
	}

	return manager
}

// Get the match fetcher of the main region that serves the given region.
func (r *RegionManager) getMatchFetcher(region string) (*matchfetcher.Match_fetcher, error) {
	mainRegion, err := regions.GetMainRegion(region)
	if err != nil {
		return nil, apperrors.External(err, "couldn't route region %s", region)
	}

	return r.matchFetchers[mainRegion], nil
}

// Get the league fetcher of the given platform.
func (r *RegionManager) getLeagueFetcher(region string) (*league_fetcher.League_Fetcher, error) {
	subRegion, err := regions.ParseSubRegion(region)
	if err != nil {
		return nil, apperrors.External(err, "couldn't route region %s", region)
	}

	return r.leagueFetchers[subRegion], nil
}

// PageSize of the match list pages.
func (r *RegionManager) PageSize() int {
	return matchfetcher.MatchListPageSize
}

// GetMatchIdsPage returns one page of the account match ids, most recent first.
func (r *RegionManager) GetMatchIdsPage(ctx context.Context, puuid string, region string, offset int) ([]string, error) {
	fetcher, err := r.getMatchFetcher(region)
	if err != nil {
		return nil, err
	}

	return fetcher.GetMatchList(ctx, puuid, offset)
}

// GetMatchData returns the raw payload of the match.
func (r *RegionManager) GetMatchData(ctx context.Context, matchId string, region string) (*matchfetcher.MatchData, error) {
	fetcher, err := r.getMatchFetcher(region)
	if err != nil {
		return nil, err
	}

	return fetcher.GetMatchData(ctx, matchId)
}

// GetSoloQueueRank returns the player current solo queue standing, nil when unranked.
func (r *RegionManager) GetSoloQueueRank(ctx context.Context, puuid string, region string) (*models.RankSnapshot, error) {
	fetcher, err := r.getLeagueFetcher(region)
	if err != nil {
		return nil, err
	}

	rank, err := fetcher.GetSoloQueueRank(ctx, puuid)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the rank on %s: %w", region, err)
	}

	return rank, nil
}
