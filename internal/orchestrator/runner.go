package orchestrator

// #region imports
import (
	"context"

	"golang.org/x/sync/errgroup"
)
// #endregion imports

// #region runner

// Runner evaluates many sessions concurrently. Each session remains
// strictly sequential internally; sessions share no mutable state, so the
// only coordination needed is the concurrency cap.
type Runner struct {
	controller *Controller
	limit      int
}

// NewRunner creates a runner over the given controller. limit <= 0 means
// unbounded concurrency.
func NewRunner(c *Controller, limit int) *Runner {
	return &Runner{controller: c, limit: limit}
}

// #endregion

// #region run-all

// RunAll evaluates every trigger and returns results in trigger order.
// Individual session failures are carried in their Result; RunAll itself
// only stops early when the context is cancelled.
func (r *Runner) RunAll(ctx context.Context, trigs []Trigger) []Result {
	out := make([]Result, len(trigs))

	var g errgroup.Group
	if r.limit > 0 {
		g.SetLimit(r.limit)
	}
	for i, trig := range trigs {
		g.Go(func() error {
			out[i] = r.controller.Run(ctx, trig)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // goroutines never return errors

	return out
}

// #endregion
