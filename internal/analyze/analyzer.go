// Package analyze computes per-focal-measure distributional statistics
// from a gathered dataset: sample mean and variance, the Student t
// confidence interval, the skewness-corrected Willink interval, and a
// normality assessment.
package analyze

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"simout/domain/simdata"
)

// Analyze computes statistics for each row of measures, where rows are
// focal measures and columns are observations. alpha is the
// significance level for interval construction, in (0,1).
func Analyze(measures [][]float64, alpha float64) ([]simdata.FocalStats, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("alpha must be in (0,1), got %g", alpha)
	}
	out := make([]simdata.FocalStats, len(measures))
	for i, obs := range measures {
		fs, err := analyzeOne(obs, alpha)
		if err != nil {
			return nil, fmt.Errorf("focal measure %d: %w", i, err)
		}
		out[i] = fs
	}
	return out, nil
}

// AnalyzeDataset transposes ds and analyzes every focal measure.
func AnalyzeDataset(ds *simdata.Dataset, alpha float64) (*simdata.Analysis, error) {
	st, err := Analyze(ds.Measures(), alpha)
	if err != nil {
		return nil, err
	}
	return &simdata.Analysis{
		DatasetID:   ds.ID,
		DatasetName: ds.Name,
		Alpha:       alpha,
		Stats:       st,
		CreatedAt:   ds.CreatedAt,
	}, nil
}

func analyzeOne(obs []float64, alpha float64) (simdata.FocalStats, error) {
	if len(obs) == 0 {
		return simdata.FocalStats{}, fmt.Errorf("no observations")
	}

	mean, err := stats.Mean(obs)
	if err != nil {
		return simdata.FocalStats{}, err
	}

	n := float64(len(obs))
	variance := 0.0
	if len(obs) > 1 {
		if variance, err = stats.SampleVariance(obs); err != nil {
			return simdata.FocalStats{}, err
		}
	}

	fs := simdata.FocalStats{Mean: mean, Variance: variance}

	// Constant columns happen in real data (an argmin that is always
	// the first iteration, for example). They get degenerate intervals
	// and an undefined normality result, not an error.
	if variance == 0 {
		fs.CIT = [2]float64{mean, mean}
		fs.CIWillink = [2]float64{mean, mean}
		fs.NormalP = math.NaN()
		fs.Skewness = 0
		return fs, nil
	}

	sd := math.Sqrt(variance)
	stderr := sd / math.Sqrt(n)
	tq := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 1}.Quantile(1 - alpha/2)
	fs.CIT = [2]float64{mean - tq*stderr, mean + tq*stderr}

	fs.Skewness = skewness(obs, mean, sd)
	fs.CIWillink = willinkInterval(obs, mean, variance, tq)
	fs.NormalP = normalityP(obs, mean, sd)

	return fs, nil
}

// willinkInterval computes the bias-and-skewness corrected interval of
// Willink (2005): with a = mu3/(6 sqrt(n) s^3) and
// G(r) = (cbrt(1+6a(r-a))-1)/(2a), the interval is
// [m + G(-t) se, m + G(t) se]. As a -> 0 the transform reduces to
// G(r) = r and the interval collapses onto the plain t-interval.
func willinkInterval(obs []float64, mean, variance, tq float64) [2]float64 {
	n := float64(len(obs))
	stderr := math.Sqrt(variance / n)

	// Bias-corrected third central moment.
	sum3 := 0.0
	for _, x := range obs {
		d := x - mean
		sum3 += d * d * d
	}
	mu3 := 0.0
	if n > 2 {
		mu3 = n / ((n - 1) * (n - 2)) * sum3
	}

	a := mu3 / (6 * math.Sqrt(n) * math.Pow(variance, 1.5))
	g := func(r float64) float64 {
		if math.Abs(a) < 1e-12 {
			return r
		}
		return (math.Cbrt(1+6*a*(r-a)) - 1) / (2 * a)
	}

	return [2]float64{mean + g(-tq)*stderr, mean + g(tq)*stderr}
}

// skewness returns the adjusted Fisher-Pearson standardized third
// moment, matching the usual sample skewness estimator.
func skewness(obs []float64, mean, sd float64) float64 {
	n := float64(len(obs))
	if n < 3 || sd == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range obs {
		d := (x - mean) / sd
		sum += d * d * d
	}
	return sum / n * math.Sqrt(n*(n-1)) / (n - 2)
}

// kurtosis returns total (non-excess) sample kurtosis with bias
// correction.
func kurtosis(obs []float64, mean, sd float64) float64 {
	n := float64(len(obs))
	if n < 4 || sd == 0 {
		return 3
	}
	sum := 0.0
	for _, x := range obs {
		d := (x - mean) / sd
		sum += d * d * d * d
	}
	k := sum / n
	correction := (n - 1) / ((n - 2) * (n - 3))
	return k*correction + 6/(n+1) + 3
}

// normalityP runs the D'Agostino K-squared omnibus test, an
// equivalent of Shapiro-Wilk for this purpose: both skewness and
// kurtosis are transformed to approximate standard normal deviates and
// combined into a chi-squared statistic with two degrees of freedom.
// Samples with fewer than eight observations report NaN.
func normalityP(obs []float64, mean, sd float64) float64 {
	n := float64(len(obs))
	if n < 8 || sd == 0 {
		return math.NaN()
	}

	g1 := skewness(obs, mean, sd)
	g2 := kurtosis(obs, mean, sd)

	// Skewness transform (D'Agostino).
	y := g1 * math.Sqrt((n+1)*(n+3)/(6*(n-2)))
	beta2 := (3 * (n*n + 27*n - 70) * (n + 1) * (n + 3)) / ((n - 2) * (n + 5) * (n + 7) * (n + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	if w2 <= 0 {
		return math.NaN()
	}
	delta := 1 / math.Sqrt(math.Log(math.Sqrt(w2)))
	alpha := math.Sqrt(2 / (w2 - 1))
	ay := y / alpha
	z1 := delta * math.Log(ay+math.Sqrt(ay*ay+1))

	// Kurtosis transform (Anscombe-Glynn).
	e := 3 * (n - 1) / (n + 1)
	v := 24 * n * (n - 2) * (n - 3) / ((n + 1) * (n + 1) * (n + 3) * (n + 5))
	if v <= 0 {
		return math.NaN()
	}
	x := (g2 - e) / math.Sqrt(v)

	sqrtBeta1 := 6 * (n*n - 5*n + 2) / ((n + 7) * (n + 9)) * math.Sqrt(6*(n+3)*(n+5)/(n*(n-2)*(n-3)))
	a := 6 + 8/sqrtBeta1*(2/sqrtBeta1+math.Sqrt(1+4/(sqrtBeta1*sqrtBeta1)))
	if a <= 4 {
		return math.NaN()
	}
	term := 1 - 2/(9*a)
	den := 1 + x*math.Sqrt(2/(a-4))
	if den <= 0 {
		return 0
	}
	z2 := (term - math.Pow((1-2/a)/den, 1.0/3.0)) / math.Sqrt(2/(9*a))

	k2 := z1*z1 + z2*z2
	return 1 - distuv.ChiSquared{K: 2}.CDF(k2)
}
