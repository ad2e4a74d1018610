package repositories

import (
	"context"

	"leaguestats/pkg/apperrors"
	"leaguestats/pkg/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Public Interface.
type MatchListRepository interface {
	AppendBatch(ctx context.Context, puuid string, matchIds []string) error
	ListKnown(ctx context.Context, puuid string) ([]string, error)
}

// Match list repository structure.
type matchListRepository struct {
	db *gorm.DB
}

// Create a match list repository.
func NewMatchListRepository(db *gorm.DB) MatchListRepository {
	return &matchListRepository{db: db}
}

// ListKnown returns the match ids of the account, last inserted first.
func (mr *matchListRepository) ListKnown(ctx context.Context, puuid string) ([]string, error) {
	var matchIds []string

	err := mr.db.WithContext(ctx).
		Model(&models.SummonerMatchlist{}).
		Where("summoner_puuid = ?", puuid).
		Order("id DESC").
		Pluck("match_id", &matchIds).Error
	if err != nil {
		return nil, apperrors.Store(err, "couldn't list the known matches")
	}

	return matchIds, nil
}

// AppendBatch inserts the ids in the given order.
// Ids already linked to the account are silently skipped by the unique index.
func (mr *matchListRepository) AppendBatch(ctx context.Context, puuid string, matchIds []string) error {
	if len(matchIds) == 0 {
		return nil
	}

	entries := make([]models.SummonerMatchlist, 0, len(matchIds))
	for _, matchId := range matchIds {
		entries = append(entries, models.SummonerMatchlist{
			SummonerPuuid: puuid,
			MatchId:       matchId,
		})
	}

	err := mr.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "summoner_puuid"}, {Name: "match_id"}},
		DoNothing: true,
	}).CreateInBatches(&entries, 1000).Error
	if err != nil {
		return apperrors.Store(err, "couldn't append the match list")
	}

	return nil
}
