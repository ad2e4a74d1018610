package matchdetail

import (
	"fmt"
	"strconv"
	"strings"

	matchfetcher "leaguestats/fetcher/data/match"
	"leaguestats/pkg/database/models"
	mapvalues "leaguestats/pkg/riotvalues/maps"
	queuevalues "leaguestats/pkg/riotvalues/queue"
)

// Transform converts the raw match payload into the stored shape.
// It only reads the payload, unknown map and queue codes get placeholders.
func Transform(data *matchfetcher.MatchData) (*models.DetailedMatch, error) {
	region, gameId, err := parseMatchId(data.Metadata.MatchId)
	if err != nil {
		return nil, err
	}

	// Unknown codes already carry the placeholder.
	mapName, _ := mapvalues.MapName(data.Info.MapId)
	gameMode, _ := queuevalues.GameMode(data.Info.QueueId)

	match := &models.DetailedMatch{
		GameId:       gameId,
		Region:       region,
		MatchId:      fmt.Sprintf("%s_%d", region, gameId),
		MapId:        data.Info.MapId,
		MapName:      mapName,
		QueueId:      data.Info.QueueId,
		GameMode:     gameMode,
		GameCreation: data.Info.GameCreation.Time(),
		GameDuration: data.Info.GameDuration,
		GameVersion:  data.Info.GameVersion,
	}

	blueTeam := newTeam(models.BlueTeamId, "Blue", data.Info.Teams)
	redTeam := newTeam(models.RedTeamId, "Red", data.Info.Teams)

	for _, player := range data.Info.Participants {
		participant := convertParticipant(player)

		if player.TeamId == models.BlueTeamId {
			blueTeam.Players = append(blueTeam.Players, participant)
		} else {
			redTeam.Players = append(redTeam.Players, participant)
		}
	}

	match.SetTeams(blueTeam, redTeam)
	return match, nil
}

// Split "EUW1_7000000000" into the region and the numeric game id.
func parseMatchId(matchId string) (string, int64, error) {
	region, rawGameId, found := strings.Cut(matchId, "_")
	if !found || region == "" {
		return "", 0, fmt.Errorf("malformed match id %q", matchId)
	}

	gameId, err := strconv.ParseInt(rawGameId, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed match id %q: %w", matchId, err)
	}

	return strings.ToUpper(region), gameId, nil
}

// Create the team with the data of the teams list.
func newTeam(teamId int, color string, teams []matchfetcher.TeamInfo) models.Team {
	team := models.Team{
		TeamId:  teamId,
		Color:   color,
		Bans:    []models.Ban{},
		Players: []models.Participant{},
	}

	for _, info := range teams {
		if info.TeamId != teamId {
			continue
		}

		team.Win = info.Win
		for _, ban := range info.Bans {
			team.Bans = append(team.Bans, models.Ban{ChampionId: ban.ChampionId, PickTurn: ban.PickTurn})
		}
		team.Objectives = models.TeamObjectives{
			Barons:      info.Objectives.Baron.Kills,
			Dragons:     info.Objectives.Dragon.Kills,
			Towers:      info.Objectives.Tower.Kills,
			Inhibitors:  info.Objectives.Inhibitor.Kills,
			RiftHeralds: info.Objectives.RiftHerald.Kills,
			Kills:       info.Objectives.Champion.Kills,
		}
	}

	return team
}

// Copy the player stats as they are.
func convertParticipant(player matchfetcher.MatchPlayer) models.Participant {
	return models.Participant{
		Puuid:          player.Puuid,
		RiotIdGameName: player.RiotIdGameName,
		RiotIdTagline:  player.RiotIdTagline,
		ChampionId:     player.ChampionId,
		ChampionName:   player.ChampionName,
		TeamId:         player.TeamId,
		TeamPosition:   player.TeamPosition,
		Summoner1Id:    player.Summoner1Id,
		Summoner2Id:    player.Summoner2Id,
		Win:            player.Win,
		Stats: models.ParticipantStats{
			Kills:                       player.Kills,
			Deaths:                      player.Deaths,
			Assists:                     player.Assists,
			ChampLevel:                  player.ChampLevel,
			GoldEarned:                  player.GoldEarned,
			TotalMinionsKilled:          player.TotalMinionsKilled,
			NeutralMinionsKilled:        player.NeutralMinionsKilled,
			VisionScore:                 player.VisionScore,
			WardsPlaced:                 player.WardsPlaced,
			TotalDamageDealtToChampions: player.TotalDamageDealtToChampions,
			DamageDealtToObjectives:     player.DamageDealtToObjectives,
			TotalDamageTaken:            player.TotalDamageTaken,
			TotalHeal:                   player.TotalHeal,
			Items:                       [7]int{player.Item0, player.Item1, player.Item2, player.Item3, player.Item4, player.Item5, player.Item6},
		},
	}
}
