package trace

import (
	"context"
	"sync"

	"github.com/qsun/fluxtrace/internal/flux"
)

// Ensemble traces many field lines concurrently. Each goroutine gets
// its own Tracer from the factory, so no Problem value is shared across
// lines; only the oracle behind them is, read-only.
type Ensemble struct {
	newTracer func() *Tracer
	starts    []flux.State
}

func NewEnsemble(factory func() *Tracer, starts []flux.State) *Ensemble {
	return &Ensemble{newTracer: factory, starts: starts}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.starts))
	errs := make([]error, len(e.starts))

	var wg sync.WaitGroup
	for i := range e.starts {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			tr := e.newTracer()
			results[idx], errs[idx] = tr.Run(ctx, e.starts[idx], cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

// RadialStarts spaces n start states evenly in s over (lo, hi) at
// theta = 0, the usual seeding for a Poincaré section.
func RadialStarts(n int, lo, hi float64) []flux.State {
	starts := make([]flux.State, n)
	for i := 0; i < n; i++ {
		frac := (float64(i) + 0.5) / float64(n)
		starts[i] = flux.State{lo + frac*(hi-lo), 0}
	}
	return starts
}
