package models

import (
	"time"

	"gorm.io/datatypes"
)

// Team side identifiers used by the Riot API.
const (
	BlueTeamId = 100
	RedTeamId  = 200
)

// DetailedMatch is the stored representation of a single match, keyed by game id and region.
type DetailedMatch struct {
	ID           uint                     `gorm:"primaryKey" json:"-"`
	GameId       int64                    `gorm:"not null;uniqueIndex:idx_detailed_matches_game_region" json:"gameId"`
	Region       string                   `gorm:"type:varchar(8);not null;uniqueIndex:idx_detailed_matches_game_region" json:"region"`
	MatchId      string                   `gorm:"type:varchar(32);not null;uniqueIndex" json:"matchId"`
	MapId        int                      `gorm:"not null" json:"mapId"`
	MapName      string                   `gorm:"type:varchar(64);not null" json:"map"`
	QueueId      int                      `gorm:"not null" json:"queueId"`
	GameMode     string                   `gorm:"type:varchar(64);not null" json:"gamemode"`
	GameCreation time.Time                `gorm:"not null" json:"date"`
	GameDuration int                      `gorm:"not null" json:"time"`
	GameVersion  string                   `gorm:"type:varchar(32);not null" json:"version"`
	BlueTeam     datatypes.JSONType[Team] `gorm:"type:jsonb;not null" json:"blueTeam"`
	RedTeam      datatypes.JSONType[Team] `gorm:"type:jsonb;not null" json:"redTeam"`
	CreatedAt    time.Time                `json:"-"`
	UpdatedAt    time.Time                `json:"-"`
}

// Team aggregate for one side of the match.
type Team struct {
	TeamId     int            `json:"teamId"`
	Color      string         `json:"color"`
	Win        bool           `json:"win"`
	Bans       []Ban          `json:"bans"`
	Objectives TeamObjectives `json:"objectives"`
	Players    []Participant  `json:"players"`
}

type Ban struct {
	ChampionId int `json:"championId"`
	PickTurn   int `json:"pickTurn"`
}

// Objectives taken by a team.
type TeamObjectives struct {
	Barons      int `json:"barons"`
	Dragons     int `json:"dragons"`
	Towers      int `json:"towers"`
	Inhibitors  int `json:"inhibitors"`
	RiftHeralds int `json:"riftHeralds"`
	Kills       int `json:"kills"`
}

// Participant of a match, with the stats as they came from the API.
type Participant struct {
	Puuid          string           `json:"puuid"`
	RiotIdGameName string           `json:"name"`
	RiotIdTagline  string           `json:"tagline"`
	ChampionId     int              `json:"championId"`
	ChampionName   string           `json:"championName"`
	TeamId         int              `json:"teamId"`
	TeamPosition   string           `json:"role"`
	Summoner1Id    int              `json:"summoner1Id"`
	Summoner2Id    int              `json:"summoner2Id"`
	Win            bool             `json:"win"`
	Stats          ParticipantStats `json:"stats"`
	Rank           *RankSnapshot    `json:"rank"`
}

type ParticipantStats struct {
	Kills                       int    `json:"kills"`
	Deaths                      int    `json:"deaths"`
	Assists                     int    `json:"assists"`
	ChampLevel                  int    `json:"level"`
	GoldEarned                  int    `json:"gold"`
	TotalMinionsKilled          int    `json:"minions"`
	NeutralMinionsKilled        int    `json:"neutralMinions"`
	VisionScore                 int    `json:"vision"`
	WardsPlaced                 int    `json:"wardsPlaced"`
	TotalDamageDealtToChampions int    `json:"dmgChamp"`
	DamageDealtToObjectives     int    `json:"dmgObj"`
	TotalDamageTaken            int    `json:"dmgTaken"`
	TotalHeal                   int    `json:"heal"`
	Items                       [7]int `json:"items"`
}

// RankSnapshot is a point in time copy of the player solo queue standing.
type RankSnapshot struct {
	Tier         string `json:"tier"`
	Division     string `json:"division,omitempty"`
	LeaguePoints int    `json:"leaguePoints"`
	ShortName    string `json:"shortName"`
}

// Teams returns the blue and red team data.
func (m *DetailedMatch) Teams() (Team, Team) {
	return m.BlueTeam.Data(), m.RedTeam.Data()
}

// SetTeams replaces both team columns.
func (m *DetailedMatch) SetTeams(blue, red Team) {
	m.BlueTeam = datatypes.NewJSONType(blue)
	m.RedTeam = datatypes.NewJSONType(red)
}
