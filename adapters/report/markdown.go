package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"simout/domain/simdata"
)

// ComparisonMarkdown renders a full comparison report as Markdown:
// the implementations compared, the p-value matrix, and the pairwise
// conflict matrix when present.
func ComparisonMarkdown(ds *simdata.Dataset, c *simdata.Comparison, m *simdata.ConflictMatrix) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Comparison of %s\n\n", strings.Join(c.Names, ", "))
	fmt.Fprintf(&b, "Significance level: %.3g. Failed tests: %d.\n\n", c.Alpha, c.Fails)

	b.WriteString("## Test p-values\n\n")
	fmt.Fprintf(&b, "| output | %s |\n", strings.Join(ds.SummaryNames, " | "))
	fmt.Fprintf(&b, "|---|%s\n", strings.Repeat("---|", ds.NumSummaries()))
	for o, row := range c.PValues {
		cells := make([]string, len(row))
		for s, p := range row {
			cell := fmt.Sprintf("%.4g", p)
			if p < c.Alpha {
				cell = "**" + cell + "**"
			}
			cells[s] = cell
		}
		fmt.Fprintf(&b, "| %s | %s |\n", ds.Outputs[o], strings.Join(cells, " | "))
	}

	if m != nil {
		b.WriteString("\n## Pairwise failed-test counts\n\n")
		fmt.Fprintf(&b, "| | %s |\n", strings.Join(m.Names, " | "))
		fmt.Fprintf(&b, "|---|%s\n", strings.Repeat("---|", len(m.Names)))
		for i, row := range m.Fails {
			cells := make([]string, len(row))
			for j, f := range row {
				cells[j] = fmt.Sprintf("%d", f)
			}
			fmt.Fprintf(&b, "| %s | %s |\n", m.Names[i], strings.Join(cells, " | "))
		}
		b.WriteString("\nCounts are raw tallies without multiple-comparisons correction.\n")
	}

	return b.String()
}

// ToHTML renders a Markdown report to a standalone HTML fragment.
func ToHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}
