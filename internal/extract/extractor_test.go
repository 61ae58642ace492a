package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simout/domain/core"
)

func singleColumn(values ...float64) [][]float64 {
	table := make([][]float64, len(values))
	for i, v := range values {
		table[i] = []float64{v}
	}
	return table
}

func TestSteadyStateSummaries(t *testing.T) {
	table := singleColumn(10, 30, 5, 30, 8)
	ex := NewSteadyState(3)

	summary, err := ex.Extract(table, 1)
	require.NoError(t, err)
	require.Len(t, summary, 6)

	assert.Equal(t, 30.0, summary[0][0], "max")
	assert.Equal(t, 2.0, summary[1][0], "argmax is the first occurrence, 1-based")
	assert.Equal(t, 5.0, summary[2][0], "min")
	assert.Equal(t, 3.0, summary[3][0], "argmin, 1-based")
	assert.InDelta(t, 14.3333, summary[4][0], 1e-3, "steady-state mean of [5 30 8]")
	assert.InDelta(t, 13.6504, summary[5][0], 1e-3, "sample std of [5 30 8]")
}

func TestSteadyStateNames(t *testing.T) {
	plain, tex := NewSteadyState(1).Names()
	assert.Equal(t, []string{"max", "argmax", "min", "argmin", "mean", "std"}, plain)
	require.Len(t, tex, 6)
	assert.Equal(t, `$\bar{X}^{ss}$`, tex[4])
}

func TestSteadyStateMultipleOutputs(t *testing.T) {
	table := [][]float64{
		{1, 10},
		{3, 20},
		{2, 30},
	}
	summary, err := NewSteadyState(2).Extract(table, 2)
	require.NoError(t, err)

	assert.Equal(t, 3.0, summary[0][0])
	assert.Equal(t, 30.0, summary[0][1])
	assert.Equal(t, 2.0, summary[1][0], "argmax of first output")
	assert.Equal(t, 3.0, summary[1][1], "argmax of second output")
	assert.InDelta(t, 2.5, summary[4][0], 1e-9, "mean of [3 2]")
	assert.InDelta(t, 25.0, summary[4][1], 1e-9, "mean of [20 30]")
}

func TestSteadyStateStartIterOutOfRange(t *testing.T) {
	table := singleColumn(1, 2, 3)

	_, err := NewSteadyState(4).Extract(table, 1)
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)

	_, err = NewSteadyState(0).Extract(table, 1)
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)
}

func TestSteadyStateTooFewColumns(t *testing.T) {
	_, err := NewSteadyState(1).Extract(singleColumn(1, 2), 2)
	assert.ErrorIs(t, err, core.ErrTooFewColumns)
}

func TestSteadyStateEmptyTable(t *testing.T) {
	_, err := NewSteadyState(1).Extract(nil, 1)
	assert.ErrorIs(t, err, core.ErrEmptyTable)
}

func TestSnapshots(t *testing.T) {
	table := [][]float64{
		{1, 2},
		{3, 4},
		{5, 6},
	}
	ex := NewSnapshots([]int{1, 3})

	summary, err := ex.Extract(table, 2)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, []float64{1, 2}, summary[0])
	assert.Equal(t, []float64{5, 6}, summary[1])

	plain, tex := ex.Names()
	assert.Equal(t, []string{"it1", "it3"}, plain)
	assert.Equal(t, []string{"$X_{1}$", "$X_{3}$"}, tex)
}

func TestSnapshotsIterationOutOfRange(t *testing.T) {
	table := singleColumn(1, 2, 3)
	_, err := NewSnapshots([]int{2, 5}).Extract(table, 1)
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)
}
