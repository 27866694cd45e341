package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunBatch executes several runs of the same pipeline concurrently, typically
// a parameter sweep over placeholder feeds. At most concurrent runs are in
// flight at once; zero means sequential. The graph must not be mutated while
// a batch is in flight.
//
// Results are returned in spec order. The first error cancels the remaining
// runs.
func RunBatch(ctx context.Context, eng Engine, p *Pipeline, specs []RunSpec, concurrent int) ([][]any, error) {
	if concurrent <= 0 {
		concurrent = 1
	}

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(concurrent)

	results := make([][]any, len(specs))
	for i, spec := range specs {
		i, spec := i, spec
		errGrp.Go(func() error {
			values, err := p.Run(dCtx, eng, spec)
			if err != nil {
				return err
			}
			results[i] = values

			return nil
		})
	}

	if err := errGrp.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
