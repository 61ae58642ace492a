package gather

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simout/adapters/table"
	"simout/domain/core"
	"simout/domain/simdata"
	"simout/internal/extract"
	"simout/internal/testkit"
)

func newTestGatherer(ex extract.Extractor) *Gatherer {
	return New(table.NewGlobLister(), table.NewFileReader(), ex)
}

func TestGatherShape(t *testing.T) {
	dir := t.TempDir()
	gen := testkit.NewGenerator(1)
	pattern, err := gen.WriteReplications(dir, "model", 10, 50, 3)
	require.NoError(t, err)

	g := newTestGatherer(extract.NewSteadyState(20))
	ds, err := g.Gather(context.Background(), "model", pattern, simdata.AutoOutputs(3))
	require.NoError(t, err)

	assert.Equal(t, 10, ds.NumObservations(), "one row per matched file")
	assert.Equal(t, 3*6, ds.NumMeasures())
	assert.Equal(t, []string{"o1", "o2", "o3"}, ds.Outputs)
	assert.Equal(t, []string{"max", "argmax", "min", "argmin", "mean", "std"}, ds.SummaryNames)
	assert.NoError(t, ds.Validate())
}

func TestGatherNoFilesFound(t *testing.T) {
	g := newTestGatherer(extract.NewSteadyState(1))
	_, err := g.Gather(context.Background(), "x", filepath.Join(t.TempDir(), "*.tsv"), simdata.AutoOutputs(1))
	assert.ErrorIs(t, err, core.ErrNoFilesFound)
}

func TestGatherRoundTrip(t *testing.T) {
	// A per-file summary matrix flattened into a dataset row must
	// reconstruct exactly, summary index varying fastest.
	dir := t.TempDir()
	tbl := [][]float64{
		{10, 1},
		{30, 2},
		{5, 9},
		{30, 4},
		{8, 5},
	}
	require.NoError(t, testkit.WriteTSV(filepath.Join(dir, "only.tsv"), tbl))

	ex := extract.NewSteadyState(3)
	g := newTestGatherer(ex)
	ds, err := g.Gather(context.Background(), "x", filepath.Join(dir, "*.tsv"), simdata.AutoOutputs(2))
	require.NoError(t, err)
	require.Equal(t, 1, ds.NumObservations())

	summary, err := ex.Extract(tbl, 2)
	require.NoError(t, err)
	for o := 0; o < 2; o++ {
		for s := 0; s < 6; s++ {
			assert.Equal(t, summary[s][o], ds.Data[0][o*6+s],
				"output %d summary %d", o, s)
		}
	}
}

func TestGatherRowOrderFollowsListing(t *testing.T) {
	// Rows must follow lexical glob order even with parallel reads.
	dir := t.TempDir()
	require.NoError(t, testkit.WriteTSV(filepath.Join(dir, "a.tsv"), [][]float64{{1}}))
	require.NoError(t, testkit.WriteTSV(filepath.Join(dir, "b.tsv"), [][]float64{{2}}))
	require.NoError(t, testkit.WriteTSV(filepath.Join(dir, "c.tsv"), [][]float64{{3}}))

	g := newTestGatherer(extract.NewSnapshots([]int{1}))
	for i := 0; i < 5; i++ {
		ds, err := g.Gather(context.Background(), "x", filepath.Join(dir, "*.tsv"), simdata.AutoOutputs(1))
		require.NoError(t, err)
		assert.Equal(t, [][]float64{{1}, {2}, {3}}, ds.Data)
	}
}

func TestGatherBadFileAbortsWholeCall(t *testing.T) {
	dir := t.TempDir()
	gen := testkit.NewGenerator(2)
	_, err := gen.WriteReplications(dir, "model", 3, 30, 2)
	require.NoError(t, err)
	// Shorter than the truncation point, so extraction fails for it.
	require.NoError(t, testkit.WriteTSV(filepath.Join(dir, "model_r99.tsv"), [][]float64{{1, 2}}))

	g := newTestGatherer(extract.NewSteadyState(10))
	_, err = g.Gather(context.Background(), "model", filepath.Join(dir, "model_r*.tsv"), simdata.AutoOutputs(2))
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)
}

func TestGatherMaxParallel(t *testing.T) {
	dir := t.TempDir()
	gen := testkit.NewGenerator(3)
	pattern, err := gen.WriteReplications(dir, "m", 6, 20, 1)
	require.NoError(t, err)

	g := newTestGatherer(extract.NewSteadyState(5))
	g.MaxParallel = 2
	ds, err := g.Gather(context.Background(), "m", pattern, simdata.AutoOutputs(1))
	require.NoError(t, err)
	assert.Equal(t, 6, ds.NumObservations())
}
