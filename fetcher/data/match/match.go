package matchfetcher

import (
	"context"
	"fmt"
	"strconv"

	"leaguestats/fetcher/requests"
)

// Maximum count allowed by the match list endpoint.
const MatchListPageSize = 100

// The match fetcher with it's client and routing region.
type Match_fetcher struct {
	client *requests.RiotClient
	region string
}

// Create a instance of the match fetcher.
func CreateMatchFetcher(client *requests.RiotClient, region string) *Match_fetcher {
	return &Match_fetcher{
		client,
		region,
	}
}

// PageSize is the amount of ids requested on each match list page.
func (m *Match_fetcher) PageSize() int {
	return MatchListPageSize
}

// Get a page of a player match list, most recent first.
func (m *Match_fetcher) GetMatchList(ctx context.Context, puuid string, offset int) ([]string, error) {
	url := m.client.URL(m.region, "/lol/match/v5/matches/by-puuid/%s/ids", puuid)
	params := map[string]string{
		"start": strconv.Itoa(offset),
		"count": strconv.Itoa(MatchListPageSize),
	}

	matches, err := requests.GetJSON[[]string](ctx, m.client, url, params)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the match list for %s: %w", puuid, err)
	}

	if err := m.client.ValidateVar(ctx, *matches, "dive,required"); err != nil {
		return nil, fmt.Errorf("invalid match list for %s: %w", puuid, err)
	}

	return *matches, nil
}

// Get a given match data.
func (m *Match_fetcher) GetMatchData(ctx context.Context, matchId string) (*MatchData, error) {
	url := m.client.URL(m.region, "/lol/match/v5/matches/%s", matchId)

	matchData, err := requests.GetJSON[MatchData](ctx, m.client, url, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the match %s: %w", matchId, err)
	}

	if err := m.client.ValidateStruct(ctx, matchData); err != nil {
		return nil, fmt.Errorf("invalid match %s: %w", matchId, err)
	}

	return matchData, nil
}
