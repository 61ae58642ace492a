package analyze

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simout/domain/simdata"
	"simout/internal/testkit"
)

func TestAnalyzeKnownSample(t *testing.T) {
	obs := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	stats, err := Analyze([][]float64{obs}, 0.05)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	fs := stats[0]
	assert.InDelta(t, 5.5, fs.Mean, 1e-9)
	assert.InDelta(t, 9.1667, fs.Variance, 1e-3)

	// t(0.975, 9) = 2.2622, stderr = sqrt(9.1667/10)
	assert.InDelta(t, 5.5-2.16596, fs.CIT[0], 1e-3)
	assert.InDelta(t, 5.5+2.16596, fs.CIT[1], 1e-3)

	// Symmetric sample: zero skewness, Willink collapses onto the
	// t-interval.
	assert.InDelta(t, 0, fs.Skewness, 1e-9)
	assert.InDelta(t, fs.CIT[0], fs.CIWillink[0], 1e-9)
	assert.InDelta(t, fs.CIT[1], fs.CIWillink[1], 1e-9)

	assert.False(t, math.IsNaN(fs.NormalP))
	assert.GreaterOrEqual(t, fs.NormalP, 0.0)
	assert.LessOrEqual(t, fs.NormalP, 1.0)
}

func TestAnalyzeIntervalContainsMean(t *testing.T) {
	gen := testkit.NewGenerator(7)
	tbl := gen.Table(40, 1)
	obs := make([]float64, len(tbl))
	for i, row := range tbl {
		obs[i] = row[0]
	}

	stats, err := Analyze([][]float64{obs}, 0.05)
	require.NoError(t, err)
	fs := stats[0]

	assert.Less(t, fs.CIT[0], fs.CIT[1])
	assert.Greater(t, fs.Mean, fs.CIT[0])
	assert.Less(t, fs.Mean, fs.CIT[1])
	assert.Less(t, fs.CIWillink[0], fs.CIWillink[1])
}

func TestAnalyzeConstantMeasure(t *testing.T) {
	stats, err := Analyze([][]float64{{3, 3, 3, 3, 3}}, 0.05)
	require.NoError(t, err)
	fs := stats[0]

	assert.Equal(t, 3.0, fs.Mean)
	assert.Equal(t, 0.0, fs.Variance)
	assert.Equal(t, [2]float64{3, 3}, fs.CIT)
	assert.Equal(t, [2]float64{3, 3}, fs.CIWillink)
	assert.True(t, math.IsNaN(fs.NormalP), "normality is undefined for constant data")
	assert.Equal(t, 0.0, fs.Skewness)
}

func TestAnalyzeSkewedSample(t *testing.T) {
	// Strongly right-skewed: the Willink interval shifts relative to
	// the symmetric t-interval.
	obs := []float64{1, 1, 1, 2, 2, 3, 5, 9, 17, 33}
	stats, err := Analyze([][]float64{obs}, 0.05)
	require.NoError(t, err)
	fs := stats[0]

	assert.Greater(t, fs.Skewness, 1.0)
	assert.Less(t, fs.CIWillink[0], fs.CIWillink[1])
	assert.NotEqual(t, fs.CIT, fs.CIWillink)
}

func TestAnalyzeSmallSampleNormality(t *testing.T) {
	stats, err := Analyze([][]float64{{1, 2, 4}}, 0.05)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(stats[0].NormalP), "too few observations for the omnibus test")
}

func TestAnalyzeRejectsBadAlpha(t *testing.T) {
	_, err := Analyze([][]float64{{1, 2}}, 0)
	assert.Error(t, err)
	_, err = Analyze([][]float64{{1, 2}}, 1)
	assert.Error(t, err)
}

func TestAnalyzeDataset(t *testing.T) {
	ds, err := simdata.New("m", []string{"o1"}, []string{"a", "b"}, []string{"$a$", "$b$"},
		[][]float64{{1, 10}, {2, 20}, {3, 30}})
	require.NoError(t, err)

	a, err := AnalyzeDataset(ds, 0.05)
	require.NoError(t, err)
	require.Len(t, a.Stats, 2)
	assert.InDelta(t, 2.0, a.Stats[0].Mean, 1e-9)
	assert.InDelta(t, 20.0, a.Stats[1].Mean, 1e-9)
	assert.Equal(t, ds.Name, a.DatasetName)
	assert.Equal(t, 0.05, a.Alpha)
}
