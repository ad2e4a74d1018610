package matchfetcher

import (
	"time"

	"github.com/bytedance/sonic"
)

// Handle the conversion of the int timestamps from riot.
type RiotTime time.Time

// Add the riot time UnmarshalJSON.
func (rt *RiotTime) UnmarshalJSON(b []byte) error {
	var timestamp int64
	if err := sonic.Unmarshal(b, &timestamp); err != nil {
		return err
	}

	// Convert milliseconds to time.Time
	*rt = RiotTime(time.UnixMilli(timestamp).UTC())
	return nil
}

// Get the true time.
func (rt RiotTime) Time() time.Time {
	return time.Time(rt)
}

// Return type from the match_v5 endpoint.
type MatchData struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchId      string   `json:"matchId" validate:"required"`
	Participants []string `json:"participants"`
}

// Match information.
type MatchInfo struct {
	GameId       int64         `json:"gameId" validate:"required"`
	PlatformId   string        `json:"platformId"`
	GameCreation RiotTime      `json:"gameCreation"`
	GameDuration int           `json:"gameDuration" validate:"gte=0"`
	GameVersion  string        `json:"gameVersion"`
	MapId        int           `json:"mapId"`
	QueueId      int           `json:"queueId"`
	Participants []MatchPlayer `json:"participants" validate:"required,min=1,dive"`
	Teams        []TeamInfo    `json:"teams" validate:"dive"`
}

// Player results.
type MatchPlayer struct {
	Puuid                       string `json:"puuid" validate:"required"`
	RiotIdGameName              string `json:"riotIdGameName"`
	RiotIdTagline               string `json:"riotIdTagline"`
	ChampionId                  int    `json:"championId"`
	ChampionName                string `json:"championName"`
	TeamId                      int    `json:"teamId" validate:"oneof=100 200"`
	TeamPosition                string `json:"teamPosition"`
	Summoner1Id                 int    `json:"summoner1Id"`
	Summoner2Id                 int    `json:"summoner2Id"`
	Win                         bool   `json:"win"`
	Kills                       int    `json:"kills"`
	Deaths                      int    `json:"deaths"`
	Assists                     int    `json:"assists"`
	ChampLevel                  int    `json:"champLevel"`
	GoldEarned                  int    `json:"goldEarned"`
	TotalMinionsKilled          int    `json:"totalMinionsKilled"`
	NeutralMinionsKilled        int    `json:"neutralMinionsKilled"`
	VisionScore                 int    `json:"visionScore"`
	WardsPlaced                 int    `json:"wardsPlaced"`
	TotalDamageDealtToChampions int    `json:"totalDamageDealtToChampions"`
	DamageDealtToObjectives     int    `json:"damageDealtToObjectives"`
	TotalDamageTaken            int    `json:"totalDamageTaken"`
	TotalHeal                   int    `json:"totalHeal"`
	Item0                       int    `json:"item0"`
	Item1                       int    `json:"item1"`
	Item2                       int    `json:"item2"`
	Item3                       int    `json:"item3"`
	Item4                       int    `json:"item4"`
	Item5                       int    `json:"item5"`
	Item6                       int    `json:"item6"`
}

// Team information.
type TeamInfo struct {
	Bans       []Ban      `json:"bans"`
	Objectives Objectives `json:"objectives"`
	TeamId     int        `json:"teamId" validate:"oneof=100 200"`
	Win        bool       `json:"win"`
}

// Ban information.
type Ban struct {
	ChampionId int `json:"championId"`
	PickTurn   int `json:"pickTurn"`
}

type Objectives struct {
	Baron      Objective `json:"baron"`
	Champion   Objective `json:"champion"`
	Dragon     Objective `json:"dragon"`
	Inhibitor  Objective `json:"inhibitor"`
	RiftHerald Objective `json:"riftHerald"`
	Tower      Objective `json:"tower"`
}

type Objective struct {
	First bool `json:"first"`
	Kills int  `json:"kills"`
}
