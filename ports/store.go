package ports

import (
	"context"

	"simout/domain/simdata"
)

// ResultStore archives gathered datasets and computed results for
// cross-run tracking. Entirely optional: the pipeline itself never
// requires persistence.
type ResultStore interface {
	SaveDataset(ctx context.Context, ds *simdata.Dataset) error
	SaveAnalysis(ctx context.Context, a *simdata.Analysis) error
	SaveComparison(ctx context.Context, c *simdata.Comparison) error
	Close() error
}
