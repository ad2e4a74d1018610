package requests

import (
	"context"
	"time"

	"leaguestats/pkg/config"

	"golang.org/x/time/rate"
)

// Full riot rate limit, containing all the constraints.
// Every request consumes from both windows, background jobs also consume from their own slower limiter
// so on demand requests always have some room left.
type RateLimiter struct {
	windows []*rate.Limiter
	job     *rate.Limiter
}

// Create a instance of the rate limiter.
func CreateRateLimiter(limits config.LimitsConfiguration) *RateLimiter {
	lower := windowLimiter(limits.Lower)
	higher := windowLimiter(limits.Higher)

	// Jobs get at most half of the slowest window.
	jobEvery := limits.Higher.ResetInterval / time.Duration(max(limits.Higher.Count/2, 1))

	return &RateLimiter{
		windows: []*rate.Limiter{lower, higher},
		job:     rate.NewLimiter(rate.Every(jobEvery), 1),
	}
}

// Limiter spreading the window count over the reset interval, allowing bursts of the full count.
func windowLimiter(window config.LimitWindow) *rate.Limiter {
	every := window.ResetInterval / time.Duration(window.Count)
	return rate.NewLimiter(rate.Every(every), window.Count)
}

// Wait until a on demand request can be sent.
func (r *RateLimiter) WaitApi(ctx context.Context) error {
	for _, window := range r.windows {
		if err := window.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Wait until a background request can be sent.
func (r *RateLimiter) WaitJob(ctx context.Context) error {
	if err := r.job.Wait(ctx); err != nil {
		return err
	}
	return r.WaitApi(ctx)
}

type jobKey struct{}

// AsJob marks the requests made with the context as background requests.
func AsJob(ctx context.Context) context.Context {
	return context.WithValue(ctx, jobKey{}, true)
}

// Verify if the context belongs to a background job.
func isJob(ctx context.Context) bool {
	job, _ := ctx.Value(jobKey{}).(bool)
	return job
}

// Wait according to the request priority.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if isJob(ctx) {
		return r.WaitJob(ctx)
	}
	return r.WaitApi(ctx)
}
