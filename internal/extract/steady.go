package extract

import (
	"github.com/montanaflynn/stats"

	"simout/domain/core"
)

// SteadyState is the default extraction strategy. For each output it
// records the extrema with their 1-based iteration indices, then the
// mean and sample standard deviation of the steady-state portion of
// the series (rows at or after StartIter).
type SteadyState struct {
	// StartIter is the 1-based steady-state truncation point.
	StartIter int
}

// NewSteadyState creates the strategy with the given truncation point.
func NewSteadyState(startIter int) *SteadyState {
	return &SteadyState{StartIter: startIter}
}

var (
	steadyNames = []string{"max", "argmax", "min", "argmin", "mean", "std"}
	steadyTeX   = []string{`$\max$`, `$\arg\max$`, `$\min$`, `$\arg\min$`, `$\bar{X}^{ss}$`, `$S^{ss}$`}
)

// Names returns the six summary labels in extraction order.
func (e *SteadyState) Names() (plain, tex []string) {
	return steadyNames, steadyTeX
}

// Extract computes the six summaries per output column. Iteration
// indices in the argmax/argmin rows are 1-based and refer to the first
// occurrence of the extremum.
func (e *SteadyState) Extract(table [][]float64, numOutputs int) ([][]float64, error) {
	if err := checkTable(table, numOutputs); err != nil {
		return nil, err
	}
	if e.StartIter < 1 || e.StartIter > len(table) {
		return nil, core.NewIndexError(e.StartIter, len(table))
	}

	out := make([][]float64, len(steadyNames))
	for i := range out {
		out[i] = make([]float64, numOutputs)
	}

	for c := 0; c < numOutputs; c++ {
		maxV, maxI := table[0][c], 1
		minV, minI := table[0][c], 1
		for r := 1; r < len(table); r++ {
			v := table[r][c]
			if v > maxV {
				maxV, maxI = v, r+1
			}
			if v < minV {
				minV, minI = v, r+1
			}
		}

		ss := make([]float64, 0, len(table)-e.StartIter+1)
		for r := e.StartIter - 1; r < len(table); r++ {
			ss = append(ss, table[r][c])
		}
		mean, err := stats.Mean(ss)
		if err != nil {
			return nil, err
		}
		std := 0.0
		if len(ss) > 1 {
			if std, err = stats.StandardDeviationSample(ss); err != nil {
				return nil, err
			}
		}

		out[0][c] = maxV
		out[1][c] = float64(maxI)
		out[2][c] = minV
		out[3][c] = float64(minI)
		out[4][c] = mean
		out[5][c] = std
	}

	return out, nil
}
