package matchdetail

import (
	"context"
	"fmt"
	"strings"
	"time"

	matchfetcher "leaguestats/fetcher/data/match"
	"leaguestats/fetcher/repositories"
	"leaguestats/pkg/apperrors"
	"leaguestats/pkg/database/models"
	"leaguestats/pkg/logger"
	"leaguestats/pkg/regions"

	"github.com/sourcegraph/conc/pool"
)

// Source of the raw match payloads.
type MatchDetailSource interface {
	GetMatchData(ctx context.Context, matchId string, region string) (*matchfetcher.MatchData, error)
}

// DetailCache serves the stored matches and fetches, transforms and stores the missing ones.
type DetailCache struct {
	source     MatchDetailSource
	repository repositories.DetailRepository
	logger     *logger.NewLogger
	workers    int
	timeout    time.Duration
}

// DetailCacheDeps is the dependency list for the detail cache.
type DetailCacheDeps struct {
	Source           MatchDetailSource
	DetailRepository repositories.DetailRepository
	Logger           *logger.NewLogger
	Workers          int
	Timeout          time.Duration
}

// Outcome of a single missing match.
type fetchResult struct {
	matchId string
	match   *models.DetailedMatch
	err     error
}

// NewDetailCache creates the detail cache.
func NewDetailCache(deps *DetailCacheDeps) *DetailCache {
	return &DetailCache{
		source:     deps.Source,
		repository: deps.DetailRepository,
		logger:     deps.Logger,
		workers:    max(deps.Workers, 1),
		timeout:    deps.Timeout,
	}
}

// GetMatches returns one match per distinct id that could be served, in the requested order.
// Ids are compared in their canonical "{REGION}_{gameId}" form.
// Matches that couldn't be fetched are left out, only a store failure is returned as error.
func (dc *DetailCache) GetMatches(ctx context.Context, region string, matchIds []string) ([]models.DetailedMatch, error) {
	ids := dedupe(matchIds)
	if len(ids) == 0 {
		return []models.DetailedMatch{}, nil
	}

	cached, err := dc.repository.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the stored matches: %w", err)
	}

	byId := make(map[string]models.DetailedMatch, len(ids))
	for _, match := range cached {
		byId[match.MatchId] = match
	}

	var missing []string
	for _, matchId := range ids {
		if _, ok := byId[matchId]; !ok {
			missing = append(missing, matchId)
		}
	}

	if len(missing) > 0 {
		fetched, err := dc.fetchMissing(ctx, region, missing)
		if err != nil {
			return nil, err
		}
		for matchId, match := range fetched {
			byId[matchId] = match
		}
	}

	matches := make([]models.DetailedMatch, 0, len(ids))
	for _, matchId := range ids {
		if match, ok := byId[matchId]; ok {
			matches = append(matches, match)
		}
	}

	return matches, nil
}

// GetMatch returns a single match by it's game id, nil when it couldn't be served.
func (dc *DetailCache) GetMatch(ctx context.Context, region string, gameId int64) (*models.DetailedMatch, error) {
	matchId := fmt.Sprintf("%s_%d", strings.ToUpper(region), gameId)

	matches, err := dc.GetMatches(ctx, region, []string{matchId})
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return nil, nil
	}

	return &matches[0], nil
}

// Fetch every missing match concurrently, keyed by the requested id.
func (dc *DetailCache) fetchMissing(ctx context.Context, region string, missing []string) (map[string]models.DetailedMatch, error) {
	p := pool.NewWithResults[fetchResult]().WithMaxGoroutines(dc.workers)

	for _, matchId := range missing {
		p.Go(func() fetchResult {
			return dc.fetchOne(ctx, region, matchId)
		})
	}

	fetched := make(map[string]models.DetailedMatch, len(missing))
	var storeErr error
	for _, result := range p.Wait() {
		if result.err != nil {
			if storeErr == nil {
				storeErr = result.err
			}
			continue
		}
		if result.match != nil {
			fetched[result.matchId] = *result.match
		}
	}

	if storeErr != nil {
		return nil, storeErr
	}

	dc.logger.Infof("Fetched %d of %d missing matches on %s", len(fetched), len(missing), region)
	return fetched, nil
}

// Fetch, transform and store a single match.
func (dc *DetailCache) fetchOne(ctx context.Context, region string, matchId string) fetchResult {
	fetchCtx := ctx
	if dc.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, dc.timeout)
		defer cancel()
	}

	data, err := dc.source.GetMatchData(fetchCtx, matchId, region)
	if err != nil {
		dc.logger.Warnf("Couldn't fetch match %s: %v", matchId, err)
		return fetchResult{matchId: matchId}
	}

	match, err := Transform(data)
	if err != nil {
		dc.logger.Warnf("Couldn't transform match %s: %v", matchId, err)
		return fetchResult{matchId: matchId}
	}

	if match.MatchId != matchId {
		dc.logger.Warnf("Requested match %s but the source returned %s", matchId, match.MatchId)
		return fetchResult{matchId: matchId}
	}

	err = dc.repository.Create(ctx, match)
	if err == nil {
		return fetchResult{matchId: matchId, match: match}
	}

	if !apperrors.IsDuplicate(err) {
		return fetchResult{matchId: matchId, err: fmt.Errorf("couldn't store match %s: %w", matchId, err)}
	}

	// Someone else stored it first, their copy is the canonical one.
	canonical, err := dc.repository.GetByMatchId(ctx, match.MatchId)
	if err != nil {
		return fetchResult{matchId: matchId, err: fmt.Errorf("couldn't read back match %s: %w", matchId, err)}
	}
	if canonical == nil {
		return fetchResult{matchId: matchId, match: match}
	}

	return fetchResult{matchId: matchId, match: canonical}
}

// Canonicalize the ids and remove the repeated ones, keeping the first occurrence.
func dedupe(matchIds []string) []string {
	seen := make(map[string]struct{}, len(matchIds))
	ids := make([]string, 0, len(matchIds))

	for _, matchId := range matchIds {
		matchId = regions.CanonicalMatchId(matchId)
		if matchId == "" {
			continue
		}
		if _, ok := seen[matchId]; ok {
			continue
		}
		seen[matchId] = struct{}{}
		ids = append(ids, matchId)
	}

	return ids
}
