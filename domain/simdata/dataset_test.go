package simdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simout/domain/core"
)

func validDataset(t *testing.T) *Dataset {
	t.Helper()
	ds, err := New("wolves", []string{"sheep", "wolves"},
		[]string{"mean", "std"}, []string{`$\bar{X}^{ss}$`, `$S^{ss}$`},
		[][]float64{
			{1, 2, 3, 4},
			{5, 6, 7, 8},
			{9, 10, 11, 12},
		})
	require.NoError(t, err)
	return ds
}

func TestDatasetShape(t *testing.T) {
	ds := validDataset(t)

	assert.NotEmpty(t, ds.ID)
	assert.Equal(t, 2, ds.NumOutputs())
	assert.Equal(t, 2, ds.NumSummaries())
	assert.Equal(t, 3, ds.NumObservations())
	assert.Equal(t, 4, ds.NumMeasures())
}

func TestDatasetColumnAccess(t *testing.T) {
	ds := validDataset(t)

	assert.Equal(t, []float64{1, 5, 9}, ds.Column(0))
	assert.Equal(t, []float64{4, 8, 12}, ds.Column(3))

	// Summary index varies fastest within a row.
	assert.Equal(t, []float64{2, 6, 10}, ds.FocalMeasure(0, 1))
	assert.Equal(t, []float64{3, 7, 11}, ds.FocalMeasure(1, 0))
	assert.Equal(t, "std(sheep)", ds.FocalLabel(0, 1))
	assert.Equal(t, "mean(wolves)", ds.FocalLabel(1, 0))
}

func TestDatasetMeasures(t *testing.T) {
	ds := validDataset(t)
	measures := ds.Measures()
	require.Len(t, measures, 4)
	for c, col := range measures {
		assert.Equal(t, ds.Column(c), col)
	}
}

func TestNewRejectsEmptyData(t *testing.T) {
	_, err := New("x", []string{"o1"}, []string{"mean"}, []string{"$m$"}, nil)
	assert.ErrorIs(t, err, core.ErrEmptyTable)
}

func TestNewRejectsRowWidthMismatch(t *testing.T) {
	_, err := New("x", []string{"o1", "o2"}, []string{"mean"}, []string{"$m$"},
		[][]float64{{1, 2}, {3}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestNewRejectsLabelMismatch(t *testing.T) {
	_, err := New("x", []string{"o1"}, []string{"mean", "std"}, []string{"$m$"},
		[][]float64{{1, 2}})
	assert.Error(t, err)
}

func TestAutoOutputs(t *testing.T) {
	assert.Equal(t, []string{"o1", "o2", "o3"}, AutoOutputs(3))
	assert.Empty(t, AutoOutputs(0))
}
