package compare

import (
	"fmt"

	"simout/domain/core"
	"simout/domain/simdata"
)

// ComparePairwise runs Compare on every unordered dataset pair and
// assembles the symmetric conflict matrix of failed-test counts. Cell
// counts are raw tallies with no multiple-comparisons correction
// across the k(k-1)/2 pairs.
func ComparePairwise(alpha float64, tests []TestKind, datasets []*simdata.Dataset) (*simdata.ConflictMatrix, error) {
	if len(datasets) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 datasets, got %d", core.ErrArgumentMismatch, len(datasets))
	}

	k := len(datasets)
	names := make([]string, k)
	fails := make([][]int, k)
	for i, ds := range datasets {
		names[i] = ds.Name
		fails[i] = make([]int, k)
	}

	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			cmp, err := Compare(alpha, tests, []*simdata.Dataset{datasets[i], datasets[j]})
			if err != nil {
				return nil, fmt.Errorf("comparing %s vs %s: %w", names[i], names[j], err)
			}
			fails[i][j] = cmp.Fails
			fails[j][i] = cmp.Fails
		}
	}

	return &simdata.ConflictMatrix{
		Names:     names,
		Fails:     fails,
		CreatedAt: core.Now(),
	}, nil
}
