package matchdetail

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	matchfetcher "leaguestats/fetcher/data/match"
	"leaguestats/pkg/database/models"
)

var fixedDate = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// Build a raw payload with five players per team.
func newMatchData(matchId string, mapId int, queueId int) *matchfetcher.MatchData {
	_, rawGameId, _ := strings.Cut(matchId, "_")
	gameId, _ := strconv.ParseInt(rawGameId, 10, 64)

	data := &matchfetcher.MatchData{
		Metadata: matchfetcher.MatchMetadata{MatchId: matchId},
		Info: matchfetcher.MatchInfo{
			GameId:       gameId,
			GameCreation: matchfetcher.RiotTime(fixedDate),
			GameDuration: 1800,
			GameVersion:  "14.1.1",
			MapId:        mapId,
			QueueId:      queueId,
			Teams: []matchfetcher.TeamInfo{
				{
					TeamId: models.BlueTeamId,
					Win:    true,
					Bans:   []matchfetcher.Ban{{ChampionId: 10, PickTurn: 1}},
					Objectives: matchfetcher.Objectives{
						Baron:    matchfetcher.Objective{Kills: 1},
						Dragon:   matchfetcher.Objective{Kills: 3},
						Tower:    matchfetcher.Objective{Kills: 9},
						Champion: matchfetcher.Objective{Kills: 25},
					},
				},
				{
					TeamId: models.RedTeamId,
					Bans:   []matchfetcher.Ban{{ChampionId: 20, PickTurn: 6}},
				},
			},
		},
	}

	// Interleave the sides to check the split.
	for i := range 10 {
		teamId := models.BlueTeamId
		if i%2 == 1 {
			teamId = models.RedTeamId
		}

		data.Info.Participants = append(data.Info.Participants, matchfetcher.MatchPlayer{
			Puuid:          fmt.Sprintf("puuid-%d", i),
			RiotIdGameName: fmt.Sprintf("player%d", i),
			RiotIdTagline:  "EUW",
			ChampionId:     100 + i,
			TeamId:         teamId,
			Win:            teamId == models.BlueTeamId,
			Kills:          i,
			Deaths:         10 - i,
			Assists:        2 * i,
			GoldEarned:     1000 * i,
			Item0:          3031,
			Item6:          3340,
		})
	}

	return data
}

// Build the stored match for the id.
func newStoredMatch(matchId string) *models.DetailedMatch {
	match, err := Transform(newMatchData(matchId, 11, 420))
	if err != nil {
		panic(err)
	}
	return match
}
