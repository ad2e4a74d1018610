package rank

import (
	"context"
	"fmt"
	"slices"
	"time"

	"leaguestats/fetcher/repositories"
	"leaguestats/pkg/apperrors"
	"leaguestats/pkg/database/models"
	"leaguestats/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Source of the current solo queue standing of a player.
// A nil snapshot means the player is unranked.
type RankSource interface {
	GetSoloQueueRank(ctx context.Context, puuid string, region string) (*models.RankSnapshot, error)
}

// Enricher attaches the current rank of every participant to a stored match.
type Enricher struct {
	source     RankSource
	repository repositories.DetailRepository
	logger     *logger.NewLogger
	workers    int
	timeout    time.Duration
}

type EnricherDeps struct {
	Source           RankSource
	DetailRepository repositories.DetailRepository
	Logger           *logger.NewLogger
	Workers          int
	Timeout          time.Duration
}

func NewEnricher(deps *EnricherDeps) *Enricher {
	return &Enricher{
		source:     deps.Source,
		repository: deps.DetailRepository,
		logger:     deps.Logger,
		workers:    max(deps.Workers, 1),
		timeout:    deps.Timeout,
	}
}

// EnrichMatch loads the match and refreshes it's ranks, nil when the match isn't stored.
func (e *Enricher) EnrichMatch(ctx context.Context, gameId int64, region string) (*models.DetailedMatch, error) {
	match, err := e.repository.Get(ctx, gameId, region)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the match %d: %w", gameId, err)
	}

	if match == nil {
		return nil, nil
	}

	enriched, err := e.Enrich(ctx, match)
	if apperrors.IsNotFound(err) {
		// Served by the cache after the row was removed.
		e.logger.Warnf("Match %s is no longer stored: %v", match.MatchId, err)
		return nil, nil
	}

	return enriched, err
}

// Enrich looks up every participant of both teams and persists the snapshots.
// Failed lookups leave a nil rank for that player only.
// The given match is only updated once the ranks are saved.
func (e *Enricher) Enrich(ctx context.Context, match *models.DetailedMatch) (*models.DetailedMatch, error) {
	blue, red := match.Teams()
	blue.Players = slices.Clone(blue.Players)
	red.Players = slices.Clone(red.Players)

	var g errgroup.Group
	g.SetLimit(e.workers)

	for _, team := range []*models.Team{&blue, &red} {
		for i := range team.Players {
			player := &team.Players[i]
			g.Go(func() error {
				player.Rank = e.lookup(ctx, player.Puuid, match.Region)
				return nil
			})
		}
	}

	// Lookups never return errors, failures are already a nil rank.
	_ = g.Wait()

	enriched := *match
	enriched.SetTeams(blue, red)

	if err := e.repository.UpdateRanks(ctx, &enriched); err != nil {
		return nil, fmt.Errorf("couldn't save the ranks of %s: %w", match.MatchId, err)
	}

	match.SetTeams(blue, red)
	return match, nil
}

func (e *Enricher) lookup(ctx context.Context, puuid string, region string) *models.RankSnapshot {
	if puuid == "" {
		return nil
	}

	lookupCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	rank, err := e.source.GetSoloQueueRank(lookupCtx, puuid, region)
	if err != nil {
		e.logger.Warnf("Couldn't get the rank of %s on %s: %v", puuid, region, err)
		return nil
	}

	return rank
}
