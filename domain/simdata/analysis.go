package simdata

import (
	"simout/domain/core"
)

// FocalStats holds the distributional statistics for one focal measure.
type FocalStats struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`

	// CIT is the Student t confidence interval [lower, upper].
	CIT [2]float64 `json:"ci_t"`

	// CIWillink is the skewness-corrected confidence interval of
	// Willink (2005), [lower, upper]. Equals CIT for symmetric samples.
	CIWillink [2]float64 `json:"ci_willink"`

	// NormalP is the normality-test p-value. NaN for degenerate
	// (zero-variance) or too-small samples.
	NormalP  float64 `json:"normal_p"`
	Skewness float64 `json:"skewness"`
}

// Analysis is the per-dataset distributional analysis, one FocalStats
// entry per focal measure in flattened column order.
type Analysis struct {
	DatasetID   core.DatasetID `json:"dataset_id"`
	DatasetName string         `json:"dataset_name"`
	Alpha       float64        `json:"alpha"`
	Stats       []FocalStats   `json:"stats"`
	CreatedAt   core.Timestamp `json:"created_at"`
}

// Comparison holds the outcome of one multi-dataset comparison.
type Comparison struct {
	ID    core.ComparisonID `json:"id"`
	Names []string          `json:"names"`
	Alpha float64           `json:"alpha"`

	// PValues is indexed [output][summary].
	PValues [][]float64 `json:"p_values"`

	// Fails counts cells with p < Alpha over the whole matrix.
	Fails int `json:"fails"`

	CreatedAt core.Timestamp `json:"created_at"`
}

// ConflictMatrix localizes divergent implementations: entry (i,j) is
// the failed-test count from comparing dataset i against dataset j.
// Symmetric with a zero diagonal. The tally applies no
// multiple-comparisons correction across pairs; with k implementations
// and k(k-1)/2 pairs, individual cell counts overstate joint
// significance.
type ConflictMatrix struct {
	Names     []string       `json:"names"`
	Fails     [][]int        `json:"fails"`
	CreatedAt core.Timestamp `json:"created_at"`
}
