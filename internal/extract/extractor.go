// Package extract computes per-file statistical summaries from raw
// simulation output tables. Each extraction strategy produces a fixed
// set of summaries per output column; the gatherer stacks those into a
// dataset, one row per replication.
package extract

import (
	"simout/domain/core"
)

// Extractor is the pluggable extraction strategy. Names is independent
// of data and fixed for the lifetime of the strategy instance; Extract
// returns a (numSummaries x numOutputs) matrix for one file's table.
type Extractor interface {
	Names() (plain, tex []string)
	Extract(table [][]float64, numOutputs int) ([][]float64, error)
}

// checkTable validates the shared extraction preconditions.
func checkTable(table [][]float64, numOutputs int) error {
	if len(table) == 0 {
		return core.ErrEmptyTable
	}
	for _, row := range table {
		if len(row) < numOutputs {
			return core.ErrTooFewColumns
		}
	}
	return nil
}
