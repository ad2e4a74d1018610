package models

import "time"

// Summoner is a account that had it's match list synchronized at least once.
type Summoner struct {
	Puuid         string     `gorm:"primaryKey;type:varchar(78)" json:"puuid"`
	Region        string     `gorm:"type:varchar(8);not null" json:"region"`
	LastMatchSync *time.Time `json:"lastMatchSync"`
	CreatedAt     time.Time  `json:"-"`
	UpdatedAt     time.Time  `json:"-"`
}

// SummonerMatchlist links a account to a match it played.
type SummonerMatchlist struct {
	ID            uint      `gorm:"primaryKey"`
	SummonerPuuid string    `gorm:"type:varchar(78);not null;uniqueIndex:idx_summoner_matchlists_puuid_match"`
	MatchId       string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_summoner_matchlists_puuid_match"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}
