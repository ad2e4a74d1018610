package league_fetcher

import (
	"context"
	"fmt"

	"leaguestats/fetcher/requests"
	"leaguestats/pkg/database/models"
	queuevalues "leaguestats/pkg/riotvalues/queue"
	tiervalues "leaguestats/pkg/riotvalues/tier"
)

// Define the type return by the simple league entries.
type LeagueEntry struct {
	Puuid        string  `json:"puuid"`
	Tier         *string `json:"tier,omitempty"`
	Rank         *string `json:"rank,omitempty"`
	QueueType    *string `json:"queueType,omitempty" validate:"required"`
	LeaguePoints int     `json:"leaguePoints" validate:"gte=0"`
	Wins         int     `json:"wins" validate:"gte=0"`
	Losses       int     `json:"losses" validate:"gte=0"`
}

// The league fetcher with it's client and platform region.
type League_Fetcher struct {
	client *requests.RiotClient
	region string
}

// Create a league fetcher.
func CreateLeagueFetcher(client *requests.RiotClient, region string) *League_Fetcher {
	return &League_Fetcher{
		client,
		region,
	}
}

// Get a given player entries for each queue.
func (l *League_Fetcher) GetLeagueByPuuid(ctx context.Context, puuid string) ([]LeagueEntry, error) {
	url := l.client.URL(l.region, "/lol/league/v4/entries/by-puuid/%s", puuid)

	entries, err := requests.GetJSON[[]LeagueEntry](ctx, l.client, url, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the league entries for %s: %w", puuid, err)
	}

	if err := l.client.ValidateVar(ctx, *entries, "dive"); err != nil {
		return nil, fmt.Errorf("invalid league entries for %s: %w", puuid, err)
	}

	return *entries, nil
}

// Get the solo queue snapshot of the player.
// Nil means the player is unranked in solo queue.
func (l *League_Fetcher) GetSoloQueueRank(ctx context.Context, puuid string) (*models.RankSnapshot, error) {
	entries, err := l.GetLeagueByPuuid(ctx, puuid)
	if err != nil {
		return nil, err
	}

	return SoloQueueSnapshot(entries), nil
}

// SoloQueueSnapshot picks the solo queue entry and converts it.
func SoloQueueSnapshot(entries []LeagueEntry) *models.RankSnapshot {
	for _, entry := range entries {
		if entry.QueueType == nil || *entry.QueueType != queuevalues.SoloQueue || entry.Tier == nil {
			continue
		}

		division := ""
		if entry.Rank != nil && !tiervalues.IsHighElo(*entry.Tier) {
			division = *entry.Rank
		}

		return &models.RankSnapshot{
			Tier:         *entry.Tier,
			Division:     division,
			LeaguePoints: entry.LeaguePoints,
			ShortName:    tiervalues.ShortName(*entry.Tier, division),
		}
	}

	return nil
}
