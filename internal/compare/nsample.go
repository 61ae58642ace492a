package compare

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// anovaF runs the one-way fixed-effects ANOVA F-test on k groups. The
// F statistic is assembled here; the p-value comes from the F
// distribution.
func anovaF(groups [][]float64) (float64, error) {
	k := len(groups)
	n := 0
	var all []float64
	for i, g := range groups {
		if len(g) < 2 {
			return 0, fmt.Errorf("group %d has %d observations, need at least 2", i, len(g))
		}
		n += len(g)
		all = append(all, g...)
	}

	grand := stat.Mean(all, nil)
	ssb, ssw := 0.0, 0.0
	for _, g := range groups {
		m := stat.Mean(g, nil)
		d := m - grand
		ssb += float64(len(g)) * d * d
		for _, x := range g {
			e := x - m
			ssw += e * e
		}
	}

	df1 := float64(k - 1)
	df2 := float64(n - k)
	if ssw == 0 {
		// Constant within groups. Either everything is one constant
		// (no difference) or group levels differ (certain difference).
		if ssb == 0 {
			return 1, nil
		}
		return 0, nil
	}

	f := (ssb / df1) / (ssw / df2)
	return 1 - distuv.F{D1: df1, D2: df2}.CDF(f), nil
}

// kruskalWallis runs the Kruskal-Wallis H-test on k groups, with
// mid-ranks for ties and the standard tie correction. The p-value uses
// the chi-squared approximation with k-1 degrees of freedom.
func kruskalWallis(groups [][]float64) (float64, error) {
	k := len(groups)
	n := 0
	for i, g := range groups {
		if len(g) < 2 {
			return 0, fmt.Errorf("group %d has %d observations, need at least 2", i, len(g))
		}
		n += len(g)
	}

	type obs struct {
		value float64
		group int
	}
	all := make([]obs, 0, n)
	for gi, g := range groups {
		for _, x := range g {
			all = append(all, obs{x, gi})
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].value < all[j].value })

	// Mid-ranks with tie accounting.
	rankSums := make([]float64, k)
	tieTerm := 0.0
	for i := 0; i < n; {
		j := i
		for j < n && all[j].value == all[i].value {
			j++
		}
		// Ranks are 1-based; ties share the average rank of the run.
		mid := float64(i+j+1) / 2
		if t := float64(j - i); t > 1 {
			tieTerm += t*t*t - t
		}
		for ; i < j; i++ {
			rankSums[all[i].group] += mid
		}
	}

	nf := float64(n)
	h := 0.0
	for gi, g := range groups {
		ri := rankSums[gi] / float64(len(g))
		d := ri - (nf+1)/2
		h += float64(len(g)) * d * d
	}
	h *= 12 / (nf * (nf + 1))

	correction := 1 - tieTerm/(nf*nf*nf-nf)
	if correction <= 0 {
		// All observations identical.
		return 1, nil
	}
	h /= correction

	return 1 - distuv.ChiSquared{K: float64(k - 1)}.CDF(h), nil
}
