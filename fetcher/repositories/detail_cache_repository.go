package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"leaguestats/pkg/database/models"
	"leaguestats/pkg/logger"

	"github.com/bytedance/sonic"
)

// Key of a single match detail on redis.
const detailKeyFormat = "match:detail:%s"

// Operations used from the redis client.
type DetailCacheClient interface {
	MGet(ctx context.Context, keys ...string) ([]any, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Read-through cache in front of the detail repository.
// Redis failures are logged and the call falls back to the database.
type cachedDetailRepository struct {
	next   DetailRepository
	cache  DetailCacheClient
	ttl    time.Duration
	logger *logger.NewLogger
}

// Wrap the repository with the redis cache.
func NewCachedDetailRepository(next DetailRepository, cache DetailCacheClient, ttl time.Duration, log *logger.NewLogger) DetailRepository {
	return &cachedDetailRepository{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

func detailKey(matchId string) string {
	return fmt.Sprintf(detailKeyFormat, matchId)
}

// Get goes through the cache using the match id built from the key.
func (cr *cachedDetailRepository) Get(ctx context.Context, gameId int64, region string) (*models.DetailedMatch, error) {
	matchId := fmt.Sprintf("%s_%d", strings.ToUpper(region), gameId)
	if match := cr.getCached(ctx, matchId); match != nil {
		return match, nil
	}

	match, err := cr.next.Get(ctx, gameId, region)
	if err != nil || match == nil {
		return match, err
	}

	cr.store(ctx, match)
	return match, nil
}

func (cr *cachedDetailRepository) GetByMatchId(ctx context.Context, matchId string) (*models.DetailedMatch, error) {
	if match := cr.getCached(ctx, matchId); match != nil {
		return match, nil
	}

	match, err := cr.next.GetByMatchId(ctx, matchId)
	if err != nil || match == nil {
		return match, err
	}

	cr.store(ctx, match)
	return match, nil
}

// GetMany reads all keys at once and only asks the database for the misses.
func (cr *cachedDetailRepository) GetMany(ctx context.Context, matchIds []string) ([]models.DetailedMatch, error) {
	if len(matchIds) == 0 {
		return nil, nil
	}

	keys := make([]string, len(matchIds))
	for i, matchId := range matchIds {
		keys[i] = detailKey(matchId)
	}

	values, err := cr.cache.MGet(ctx, keys...)
	if err != nil || len(values) != len(matchIds) {
		if err != nil {
			cr.logger.Warnf("Couldn't read the match cache: %v", err)
		}
		values = make([]any, len(matchIds))
	}

	var matches []models.DetailedMatch
	var misses []string
	for i, value := range values {
		match := cr.decode(matchIds[i], value)
		if match == nil {
			misses = append(misses, matchIds[i])
			continue
		}
		matches = append(matches, *match)
	}

	if len(misses) == 0 {
		return matches, nil
	}

	stored, err := cr.next.GetMany(ctx, misses)
	if err != nil {
		return nil, err
	}

	for i := range stored {
		cr.store(ctx, &stored[i])
	}

	return append(matches, stored...), nil
}

// Create on the database, then warm the cache.
func (cr *cachedDetailRepository) Create(ctx context.Context, match *models.DetailedMatch) error {
	if err := cr.next.Create(ctx, match); err != nil {
		return err
	}

	cr.store(ctx, match)
	return nil
}

// UpdateRanks on the database, then replace the cached copy.
func (cr *cachedDetailRepository) UpdateRanks(ctx context.Context, match *models.DetailedMatch) error {
	if err := cr.next.UpdateRanks(ctx, match); err != nil {
		return err
	}

	cr.store(ctx, match)
	return nil
}

func (cr *cachedDetailRepository) getCached(ctx context.Context, matchId string) *models.DetailedMatch {
	values, err := cr.cache.MGet(ctx, detailKey(matchId))
	if err != nil {
		cr.logger.Warnf("Couldn't read the match cache: %v", err)
		return nil
	}

	if len(values) == 0 {
		return nil
	}

	return cr.decode(matchId, values[0])
}

// Decode a MGet entry, nil for misses and broken entries.
func (cr *cachedDetailRepository) decode(matchId string, value any) *models.DetailedMatch {
	raw, ok := value.(string)
	if !ok {
		return nil
	}

	var match models.DetailedMatch
	if err := sonic.UnmarshalString(raw, &match); err != nil {
		cr.logger.Warnf("Discarding cached match %s: %v", matchId, err)
		return nil
	}

	return &match
}

func (cr *cachedDetailRepository) store(ctx context.Context, match *models.DetailedMatch) {
	raw, err := sonic.MarshalString(match)
	if err != nil {
		cr.logger.Warnf("Couldn't encode match %s: %v", match.MatchId, err)
		return
	}

	if err := cr.cache.Set(ctx, detailKey(match.MatchId), raw, cr.ttl); err != nil {
		cr.logger.Warnf("Couldn't cache match %s: %v", match.MatchId, err)
	}
}
