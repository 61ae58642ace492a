package extract

import (
	"fmt"

	"simout/domain/core"
)

// Snapshots extracts the raw output values at an explicit ordered list
// of 1-based iteration indices. Each requested iteration becomes one
// summary row, so numSummaries equals the list length.
type Snapshots struct {
	Iters []int
}

// NewSnapshots creates the strategy for the given iteration list.
func NewSnapshots(iters []int) *Snapshots {
	return &Snapshots{Iters: iters}
}

// Names labels each summary with its iteration index.
func (e *Snapshots) Names() (plain, tex []string) {
	plain = make([]string, len(e.Iters))
	tex = make([]string, len(e.Iters))
	for i, it := range e.Iters {
		plain[i] = fmt.Sprintf("it%d", it)
		tex[i] = fmt.Sprintf("$X_{%d}$", it)
	}
	return plain, tex
}

// Extract copies the requested iteration rows. Indices beyond the
// table's row count are an error, never clipped.
func (e *Snapshots) Extract(table [][]float64, numOutputs int) ([][]float64, error) {
	if err := checkTable(table, numOutputs); err != nil {
		return nil, err
	}

	out := make([][]float64, len(e.Iters))
	for i, it := range e.Iters {
		if it < 1 || it > len(table) {
			return nil, core.NewIndexError(it, len(table))
		}
		row := make([]float64, numOutputs)
		copy(row, table[it-1][:numOutputs])
		out[i] = row
	}
	return out, nil
}
