package jobs

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"leaguestats/fetcher/requests"
	"leaguestats/fetcher/services/matchlist"
	"leaguestats/pkg/database/models"
	"leaguestats/pkg/logger"

	"github.com/panjf2000/ants/v2"
)

type StaleSummoners interface {
	ListStale(ctx context.Context, before time.Time, limit int) ([]models.Summoner, error)
}

type AccountSynchronizer interface {
	SyncAccount(ctx context.Context, account models.Summoner) (*matchlist.SyncResult, error)
}

type DetailFetcher interface {
	GetMatches(ctx context.Context, region string, matchIds []string) ([]models.DetailedMatch, error)
}

// MatchSync resynchronizes the accounts that weren't synchronized for a while.
type MatchSync struct {
	summoners    StaleSummoners
	synchronizer AccountSynchronizer
	details      DetailFetcher
	logger       *logger.NewLogger
	staleAfter   time.Duration
	batchSize    int
	workers      int
	now          func() time.Time
}

type MatchSyncDeps struct {
	Summoners    StaleSummoners
	Synchronizer AccountSynchronizer
	Details      DetailFetcher
	Logger       *logger.NewLogger
	StaleAfter   time.Duration
	BatchSize    int
	Workers      int
}

// Outcome of a single run.
type MatchSyncReport struct {
	Accounts   int
	Failed     int
	NewMatches int
	Details    int
}

func NewMatchSync(deps *MatchSyncDeps) *MatchSync {
	return &MatchSync{
		summoners:    deps.Summoners,
		synchronizer: deps.Synchronizer,
		details:      deps.Details,
		logger:       deps.Logger,
		staleAfter:   deps.StaleAfter,
		batchSize:    max(deps.BatchSize, 1),
		workers:      max(deps.Workers, 1),
		now:          time.Now,
	}
}

// Run synchronizes a batch of stale accounts and fetches the details of their new matches.
// A failing account is logged and skipped, only the listing of the accounts can fail the run.
func (j *MatchSync) Run(ctx context.Context) (*MatchSyncReport, error) {
	ctx = requests.AsJob(ctx)

	j.logger.Infof("Starting match list synchronization.")

	stale, err := j.summoners.ListStale(ctx, j.now().Add(-j.staleAfter), j.batchSize)
	if err != nil {
		return nil, fmt.Errorf("couldn't list the stale summoners: %w", err)
	}

	var failed, newMatches, details atomic.Int32

	pool, err := ants.NewPool(j.workers)
	if err != nil {
		return nil, fmt.Errorf("couldn't create the worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, account := range stale {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			fetched, err := j.syncAccount(ctx, account)
			if err != nil {
				failed.Add(1)
				j.logger.Errorf("Couldn't synchronize %s: %v", account.Puuid, err)
				return
			}

			newMatches.Add(int32(fetched.newMatches))
			details.Add(int32(fetched.details))
		}); err != nil {
			wg.Done()
			failed.Add(1)
			j.logger.Errorf("Couldn't submit %s to the pool: %v", account.Puuid, err)
		}
	}

	wg.Wait()

	report := &MatchSyncReport{
		Accounts:   len(stale),
		Failed:     int(failed.Load()),
		NewMatches: int(newMatches.Load()),
		Details:    int(details.Load()),
	}

	j.logger.Infof("Synchronized %d accounts, %d failed, %d new matches, %d details stored.",
		report.Accounts, report.Failed, report.NewMatches, report.Details)
	j.logger.EmptyLine()

	return report, nil
}

type accountOutcome struct {
	newMatches int
	details    int
}

// Synchronize a single account, then cache the details of the new ids.
func (j *MatchSync) syncAccount(ctx context.Context, account models.Summoner) (*accountOutcome, error) {
	result, err := j.synchronizer.SyncAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	outcome := &accountOutcome{newMatches: len(result.NewMatchIds)}
	if len(result.NewMatchIds) == 0 {
		return outcome, nil
	}

	matches, err := j.details.GetMatches(ctx, account.Region, result.NewMatchIds)
	if err != nil {
		return nil, err
	}

	outcome.details = len(matches)
	return outcome, nil
}
