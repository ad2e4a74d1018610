package repositories

import (
	"context"
	"errors"
	"strings"

	"leaguestats/pkg/apperrors"
	"leaguestats/pkg/database/models"

	"gorm.io/gorm"
)

// Public Interface.
type DetailRepository interface {
	Create(ctx context.Context, match *models.DetailedMatch) error
	Get(ctx context.Context, gameId int64, region string) (*models.DetailedMatch, error)
	GetByMatchId(ctx context.Context, matchId string) (*models.DetailedMatch, error)
	GetMany(ctx context.Context, matchIds []string) ([]models.DetailedMatch, error)
	UpdateRanks(ctx context.Context, match *models.DetailedMatch) error
}

// Detail repository structure.
type detailRepository struct {
	db *gorm.DB
}

// Create a detail repository.
func NewDetailRepository(db *gorm.DB) DetailRepository {
	return &detailRepository{db: db}
}

// Get the match by it's key, nil if it wasn't stored yet.
func (dr *detailRepository) Get(ctx context.Context, gameId int64, region string) (*models.DetailedMatch, error) {
	var match models.DetailedMatch

	err := dr.db.WithContext(ctx).
		Where("game_id = ? AND region = ?", gameId, strings.ToUpper(region)).
		First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Store(err, "couldn't get the match %d on %s", gameId, region)
	}

	return &match, nil
}

// Get the match by the Riot match id, nil if it wasn't stored yet.
func (dr *detailRepository) GetByMatchId(ctx context.Context, matchId string) (*models.DetailedMatch, error) {
	var match models.DetailedMatch

	err := dr.db.WithContext(ctx).Where("match_id = ?", matchId).First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Store(err, "couldn't get the match %s", matchId)
	}

	return &match, nil
}

// Get all the already stored matches among the ids.
func (dr *detailRepository) GetMany(ctx context.Context, matchIds []string) ([]models.DetailedMatch, error) {
	const batchSize = 1000
	var allMatches []models.DetailedMatch

	for i := 0; i < len(matchIds); i += batchSize {
		end := min(i+batchSize, len(matchIds))

		var batchMatches []models.DetailedMatch
		err := dr.db.WithContext(ctx).Where("match_id IN (?)", matchIds[i:end]).Find(&batchMatches).Error
		if err != nil {
			return nil, apperrors.Store(err, "couldn't get the stored matches")
		}

		allMatches = append(allMatches, batchMatches...)
	}

	return allMatches, nil
}

// Simply create the match.
// A match that was already stored by someone else returns a ErrDuplicateWrite.
func (dr *detailRepository) Create(ctx context.Context, match *models.DetailedMatch) error {
	err := dr.db.WithContext(ctx).Create(match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Duplicate(err, "match %s already stored", match.MatchId)
		}
		return apperrors.Store(err, "couldn't create the match %s", match.MatchId)
	}

	return nil
}

// UpdateRanks overwrites only the team columns, where the participant ranks live.
func (dr *detailRepository) UpdateRanks(ctx context.Context, match *models.DetailedMatch) error {
	result := dr.db.WithContext(ctx).
		Model(&models.DetailedMatch{}).
		Where("game_id = ? AND region = ?", match.GameId, match.Region).
		Updates(map[string]any{
			"blue_team": match.BlueTeam,
			"red_team":  match.RedTeam,
		})
	if result.Error != nil {
		return apperrors.Store(result.Error, "couldn't update the ranks of %s", match.MatchId)
	}

	if result.RowsAffected == 0 {
		return apperrors.NotFound(gorm.ErrRecordNotFound, "match %s is no longer stored", match.MatchId)
	}

	return nil
}
