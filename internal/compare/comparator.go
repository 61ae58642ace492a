// Package compare runs per-focal-measure hypothesis tests across two
// or more gathered datasets and aggregates the outcomes. Two datasets
// get two-sample tests (Student t or Mann-Whitney U); more get their
// n-sample counterparts (one-way ANOVA or Kruskal-Wallis), applied
// jointly.
package compare

import (
	"errors"
	"fmt"
	"math"

	mmstats "github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat"

	"simout/domain/core"
	"simout/domain/simdata"
)

// TestKind selects parametric or non-parametric testing for one
// summary slot. The same slot shares its kind across all outputs.
type TestKind int

const (
	Parametric TestKind = iota
	NonParametric
)

// ParseTestKinds parses a selector like "p,n,p,n,p,n".
func ParseTestKinds(spec []string) ([]TestKind, error) {
	kinds := make([]TestKind, len(spec))
	for i, s := range spec {
		switch s {
		case "p", "par", "parametric":
			kinds[i] = Parametric
		case "n", "np", "nonparametric":
			kinds[i] = NonParametric
		default:
			return nil, fmt.Errorf("unknown test kind %q (use p or n)", s)
		}
	}
	return kinds, nil
}

// Compare tests every focal measure across the supplied datasets and
// counts how many tests fall below alpha. tests must have one entry
// per summary slot.
func Compare(alpha float64, tests []TestKind, datasets []*simdata.Dataset) (*simdata.Comparison, error) {
	if len(datasets) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 datasets, got %d", core.ErrArgumentMismatch, len(datasets))
	}
	if err := checkAlignment(datasets); err != nil {
		return nil, err
	}
	numOutputs := datasets[0].NumOutputs()
	numSummaries := datasets[0].NumSummaries()
	if len(tests) != numSummaries {
		return nil, core.NewArgumentMismatchError("test selector", len(tests), numSummaries)
	}

	names := make([]string, len(datasets))
	for i, ds := range datasets {
		names[i] = ds.Name
	}

	pvals := make([][]float64, numOutputs)
	fails := 0
	for o := 0; o < numOutputs; o++ {
		pvals[o] = make([]float64, numSummaries)
		for s := 0; s < numSummaries; s++ {
			groups := make([][]float64, len(datasets))
			for d, ds := range datasets {
				groups[d] = ds.FocalMeasure(o, s)
			}
			p, err := runTest(tests[s], groups)
			if err != nil {
				return nil, fmt.Errorf("testing %s: %w", datasets[0].FocalLabel(o, s), err)
			}
			pvals[o][s] = p
			if p < alpha {
				fails++
			}
		}
	}

	return &simdata.Comparison{
		ID:        core.ComparisonID(core.NewID()),
		Names:     names,
		Alpha:     alpha,
		PValues:   pvals,
		Fails:     fails,
		CreatedAt: core.Now(),
	}, nil
}

// checkAlignment verifies every dataset reports the same output and
// summary counts. The message names the mismatched property; finding
// the culprit dataset is the pairwise builder's job.
func checkAlignment(datasets []*simdata.Dataset) error {
	outputs := make([]int, len(datasets))
	summaries := make([]int, len(datasets))
	for i, ds := range datasets {
		outputs[i] = ds.NumOutputs()
		summaries[i] = ds.NumSummaries()
	}
	for _, n := range outputs[1:] {
		if n != outputs[0] {
			return core.NewMisalignedError("output count", outputs)
		}
	}
	for _, n := range summaries[1:] {
		if n != summaries[0] {
			return core.NewMisalignedError("summary count", summaries)
		}
	}
	return nil
}

func runTest(kind TestKind, groups [][]float64) (float64, error) {
	if len(groups) == 2 {
		if kind == Parametric {
			return tTest(groups[0], groups[1])
		}
		return uTest(groups[0], groups[1])
	}
	if kind == Parametric {
		return anovaF(groups)
	}
	return kruskalWallis(groups)
}

// tTest runs the pooled-variance two-sample Student t-test.
func tTest(a, b []float64) (float64, error) {
	r, err := mmstats.TwoSampleTTest(
		mmstats.Sample{Xs: a}, mmstats.Sample{Xs: b}, mmstats.LocationDiffers)
	if err != nil {
		return degeneratePValue(a, b, err)
	}
	return r.P, nil
}

// uTest runs the Mann-Whitney U rank-sum test.
func uTest(a, b []float64) (float64, error) {
	r, err := mmstats.MannWhitneyUTest(a, b, mmstats.LocationDiffers)
	if err != nil {
		return degeneratePValue(a, b, err)
	}
	return r.P, nil
}

// degeneratePValue maps zero-variance test failures onto well-defined
// p-values: identical constant samples carry no evidence of a
// difference (p=1), constant samples at different levels are trivially
// different (p=0). Anything else is a real error.
func degeneratePValue(a, b []float64, err error) (float64, error) {
	if errors.Is(err, mmstats.ErrSamplesEqual) {
		return 1, nil
	}
	if errors.Is(err, mmstats.ErrZeroVariance) {
		if stat.Mean(a, nil) == stat.Mean(b, nil) {
			return 1, nil
		}
		return 0, nil
	}
	return math.NaN(), err
}
