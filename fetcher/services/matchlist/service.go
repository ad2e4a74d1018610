package matchlist

import (
	"context"
	"fmt"
	"slices"
	"time"

	"leaguestats/fetcher/repositories"
	"leaguestats/pkg/database/models"
	"leaguestats/pkg/logger"
	"leaguestats/pkg/regions"
)

// Source of the paginated match ids.
type MatchPageSource interface {
	GetMatchIdsPage(ctx context.Context, puuid string, region string, offset int) ([]string, error)
	PageSize() int
}

// Synchronizer reconciles the stored match list of a account with the Riot API.
type Synchronizer struct {
	source    MatchPageSource
	matchList repositories.MatchListRepository
	summoners repositories.SummonerRepository
	logger    *logger.NewLogger
	now       func() time.Time
}

// SynchronizerDeps is the dependency list for the synchronizer.
type SynchronizerDeps struct {
	Source              MatchPageSource
	MatchListRepository repositories.MatchListRepository
	SummonerRepository  repositories.SummonerRepository
	Logger              *logger.NewLogger
}

// Result of a account synchronization.
type SyncResult struct {
	// Every known match id, most recent first.
	MatchIds []string
	// Ids persisted by this synchronization, most recent first.
	NewMatchIds []string
}

// NewSynchronizer creates a match list synchronizer.
func NewSynchronizer(deps *SynchronizerDeps) *Synchronizer {
	return &Synchronizer{
		source:    deps.Source,
		matchList: deps.MatchListRepository,
		summoners: deps.SummonerRepository,
		logger:    deps.Logger,
		now:       time.Now,
	}
}

// SyncAccount registers the account, loads it's stored match list and synchronizes it.
func (s *Synchronizer) SyncAccount(ctx context.Context, account models.Summoner) (*SyncResult, error) {
	if err := s.summoners.Upsert(ctx, &account); err != nil {
		return nil, err
	}

	known, err := s.matchList.ListKnown(ctx, account.Puuid)
	if err != nil {
		return nil, err
	}

	all, newIds, err := s.synchronize(ctx, account, known)
	if err != nil {
		return nil, err
	}

	if err := s.summoners.SetSynced(ctx, account.Puuid, s.now()); err != nil {
		return nil, err
	}

	slices.Reverse(newIds)
	return &SyncResult{MatchIds: all, NewMatchIds: newIds}, nil
}

// Sync merges the matches newer than the known ones and returns the full list, most recent first.
// Failing to fetch a page only ends the pagination, only a store failure is returned.
func (s *Synchronizer) Sync(ctx context.Context, account models.Summoner, known []string) ([]string, error) {
	all, _, err := s.synchronize(ctx, account, known)
	return all, err
}

func (s *Synchronizer) synchronize(ctx context.Context, account models.Summoner, known []string) ([]string, []string, error) {
	knownSet := make(map[string]struct{}, len(known))
	for _, matchId := range known {
		knownSet[matchId] = struct{}{}
	}

	fetched, err := s.fetchUntilKnown(ctx, account, knownSet)
	if err != nil {
		return nil, nil, err
	}

	newIds := filterNew(fetched, knownSet)
	if len(newIds) > 0 {
		if err := s.matchList.AppendBatch(ctx, account.Puuid, newIds); err != nil {
			return nil, nil, fmt.Errorf("couldn't persist the new matches of %s: %w", account.Puuid, err)
		}
		s.logger.Infof("Persisted %d new matches for %s", len(newIds), account.Puuid)
	}

	all := make([]string, 0, len(newIds)+len(known))
	for i := len(newIds) - 1; i >= 0; i-- {
		all = append(all, newIds[i])
	}
	all = append(all, known...)

	return all, newIds, nil
}

// Fetch the pages sequentially, each stop decision depends on the page content.
func (s *Synchronizer) fetchUntilKnown(ctx context.Context, account models.Summoner, knownSet map[string]struct{}) ([]string, error) {
	pageSize := s.source.PageSize()
	if pageSize <= 0 {
		return nil, fmt.Errorf("invalid page size %d", pageSize)
	}

	var fetched []string
	for offset := 0; ; offset += pageSize {
		page, err := s.source.GetMatchIdsPage(ctx, account.Puuid, account.Region, offset)
		if err != nil {
			s.logger.Warnf("Stopping the match list of %s at offset %d: %v", account.Puuid, offset, err)
			break
		}

		fetched = append(fetched, page...)

		if shouldStop(account, page, knownSet) {
			break
		}
	}

	return fetched, nil
}

// The pagination ends on a empty page, on a already known match or when the history leaves the account region.
func shouldStop(account models.Summoner, page []string, knownSet map[string]struct{}) bool {
	if len(page) == 0 {
		return true
	}

	last := page[len(page)-1]
	if _, known := knownSet[last]; known {
		return true
	}

	return !regions.SameRegion(regions.MatchIdRegion(last), account.Region)
}

// filterNew returns the unknown ids in chronological order.
// The set grows while filtering so repeated ids are only kept once.
func filterNew(fetched []string, knownSet map[string]struct{}) []string {
	newIds := make([]string, 0, len(fetched))

	for i := len(fetched) - 1; i >= 0; i-- {
		matchId := fetched[i]
		if _, known := knownSet[matchId]; known {
			continue
		}

		knownSet[matchId] = struct{}{}
		newIds = append(newIds, matchId)
	}

	return newIds
}
