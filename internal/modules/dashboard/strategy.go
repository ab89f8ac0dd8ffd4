package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Strategy names how a group of fetches treats individual failures.
type Strategy string

const (
	// AllOrNothing fails the whole load when any fetch fails.
	AllOrNothing Strategy = "all_or_nothing"
	// BestEffort turns a failure into a warning and omits that section.
	BestEffort Strategy = "best_effort"
)

// Warning is a non-fatal problem reported alongside a view.
type Warning struct {
	Section  string   `json:"section"`
	Message  string   `json:"message"`
	Strategy Strategy `json:"strategy"`
}

// fetchAll starts every task before waiting on any. The first failure
// cancels the shared context and is returned.
func fetchAll(ctx context.Context, tasks ...func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		task := task
		g.Go(func() error { return task(gctx) })
	}
	return g.Wait()
}
