package repositories

import (
	"context"
	"time"

	"leaguestats/pkg/apperrors"
	"leaguestats/pkg/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Public Interface.
type SummonerRepository interface {
	ListStale(ctx context.Context, before time.Time, limit int) ([]models.Summoner, error)
	SetSynced(ctx context.Context, puuid string, at time.Time) error
	Upsert(ctx context.Context, summoner *models.Summoner) error
}

// Summoner repository structure.
type summonerRepository struct {
	db *gorm.DB
}

// Create a summoner repository.
func NewSummonerRepository(db *gorm.DB) SummonerRepository {
	return &summonerRepository{db: db}
}

// Upsert the summoner, the region is updated when it changes.
func (sr *summonerRepository) Upsert(ctx context.Context, summoner *models.Summoner) error {
	err := sr.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "puuid"}},
		DoUpdates: clause.AssignmentColumns([]string{"region", "updated_at"}),
	}).Create(summoner).Error
	if err != nil {
		return apperrors.Store(err, "couldn't upsert the summoner %s", summoner.Puuid)
	}

	return nil
}

// Set the last match list synchronization.
func (sr *summonerRepository) SetSynced(ctx context.Context, puuid string, at time.Time) error {
	err := sr.db.WithContext(ctx).
		Model(&models.Summoner{}).
		Where("puuid = ?", puuid).
		Update("last_match_sync", at).Error
	if err != nil {
		return apperrors.Store(err, "couldn't set the summoner %s as synced", puuid)
	}

	return nil
}

// ListStale returns the summoners never synced or synced before the given time, oldest first.
func (sr *summonerRepository) ListStale(ctx context.Context, before time.Time, limit int) ([]models.Summoner, error) {
	var summoners []models.Summoner

	err := sr.db.WithContext(ctx).
		Where("last_match_sync IS NULL OR last_match_sync < ?", before).
		Order("last_match_sync ASC NULLS FIRST").
		Limit(limit).
		Find(&summoners).Error
	if err != nil {
		return nil, apperrors.Store(err, "couldn't list the stale summoners")
	}

	return summoners, nil
}
