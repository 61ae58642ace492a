package report

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"simout/domain/core"
	"simout/domain/simdata"
)

func fixtureDataset(t *testing.T) *simdata.Dataset {
	t.Helper()
	ds, err := simdata.New("netlogo", []string{"sheep", "wolves"},
		[]string{"mean", "std"}, []string{`$\bar{X}^{ss}$`, `$S^{ss}$`},
		[][]float64{
			{10, 1, 20, 2},
			{11, 1.5, 21, 2.5},
			{12, 2, 22, 3},
		})
	require.NoError(t, err)
	return ds
}

func fixtureAnalysis(ds *simdata.Dataset) *simdata.Analysis {
	stats := make([]simdata.FocalStats, ds.NumMeasures())
	for i := range stats {
		m := float64(i + 1)
		stats[i] = simdata.FocalStats{
			Mean:      m,
			Variance:  0.5,
			CIT:       [2]float64{m - 1, m + 1},
			CIWillink: [2]float64{m - 0.9, m + 1.1},
			NormalP:   0.4,
			Skewness:  0.1,
		}
	}
	return &simdata.Analysis{
		DatasetID:   ds.ID,
		DatasetName: ds.Name,
		Alpha:       0.05,
		Stats:       stats,
		CreatedAt:   core.Now(),
	}
}

func fixtureComparison() *simdata.Comparison {
	return &simdata.Comparison{
		ID:      core.ComparisonID(core.NewID()),
		Names:   []string{"netlogo", "repast"},
		Alpha:   0.05,
		PValues: [][]float64{{0.9, 0.01}, {0.7, 0.6}},
		Fails:   1,
	}
}

func TestAnalysisText(t *testing.T) {
	ds := fixtureDataset(t)
	out := AnalysisText(ds, fixtureAnalysis(ds))

	assert.Contains(t, out, "mean(sheep)")
	assert.Contains(t, out, "std(wolves)")
	assert.Contains(t, out, "[0, 2]")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 1+ds.NumMeasures())
}

func TestComparisonText(t *testing.T) {
	ds := fixtureDataset(t)
	out := ComparisonText(ds, fixtureComparison())

	assert.Contains(t, out, "sheep")
	assert.Contains(t, out, "0.01")
	assert.Contains(t, out, "1 of 4 tests below alpha=0.05")
}

func TestConflictText(t *testing.T) {
	m := &simdata.ConflictMatrix{
		Names: []string{"a", "b"},
		Fails: [][]int{{0, 3}, {3, 0}},
	}
	out := ConflictText(m)
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "3")
}

func TestAnalysisLaTeX(t *testing.T) {
	ds := fixtureDataset(t)
	out := AnalysisLaTeX(ds, fixtureAnalysis(ds))

	assert.Contains(t, out, "\\begin{tabular}")
	assert.Contains(t, out, `$\bar{X}^{ss}$`)
	assert.Contains(t, out, "sheep")
	assert.Contains(t, out, "\\end{tabular}")
}

func TestComparisonLaTeXEscapesOutputs(t *testing.T) {
	ds := fixtureDataset(t)
	ds.Outputs = []string{"sheep_count", "wolves"}
	out := ComparisonLaTeX(ds, fixtureComparison())
	assert.Contains(t, out, "sheep\\_count")
}

func TestComparisonMarkdown(t *testing.T) {
	ds := fixtureDataset(t)
	m := &simdata.ConflictMatrix{
		Names: []string{"netlogo", "repast"},
		Fails: [][]int{{0, 1}, {1, 0}},
	}
	out := ComparisonMarkdown(ds, fixtureComparison(), m)

	assert.Contains(t, out, "# Comparison of netlogo, repast")
	assert.Contains(t, out, "**0.01**", "sub-alpha p-values are bold")
	assert.NotContains(t, out, "**0.9**")
	assert.Contains(t, out, "## Pairwise failed-test counts")

	page := ToHTML(out)
	assert.Contains(t, string(page), "<table>")
	assert.Contains(t, string(page), "<strong>0.01</strong>")
}

func TestComparisonMarkdownWithoutConflicts(t *testing.T) {
	ds := fixtureDataset(t)
	out := ComparisonMarkdown(ds, fixtureComparison(), nil)
	assert.NotContains(t, out, "Pairwise")
}

func TestExportWorkbook(t *testing.T) {
	ds := fixtureDataset(t)
	path := filepath.Join(t.TempDir(), "out.xlsx")

	err := ExportWorkbook(path, []*simdata.Dataset{ds}, []*simdata.Analysis{fixtureAnalysis(ds)})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	label, err := f.GetCellValue("netlogo", "A1")
	require.NoError(t, err)
	assert.Equal(t, "mean(sheep)", label)

	v, err := f.GetCellValue("netlogo", "C2")
	require.NoError(t, err)
	assert.Equal(t, "20", v)

	mean, err := f.GetCellValue("netlogo analysis", "B2")
	require.NoError(t, err)
	assert.Equal(t, "1", mean)
}
