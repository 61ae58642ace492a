// Package report renders analysis and comparison results as
// plain-text, LaTeX, Markdown and Excel tables. It is strictly
// read-only over the result structures.
package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"simout/domain/simdata"
)

// AnalysisText renders the per-focal-measure statistics as an aligned
// plain-text table.
func AnalysisText(ds *simdata.Dataset, a *simdata.Analysis) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
	fmt.Fprintf(w, "measure\tmean\tvariance\tci(t)\tci(willink)\tnormal p\tskew\n")
	for o := 0; o < ds.NumOutputs(); o++ {
		for s := 0; s < ds.NumSummaries(); s++ {
			fs := a.Stats[o*ds.NumSummaries()+s]
			fmt.Fprintf(w, "%s\t%.4g\t%.4g\t[%.4g, %.4g]\t[%.4g, %.4g]\t%.4g\t%.4g\n",
				ds.FocalLabel(o, s), fs.Mean, fs.Variance,
				fs.CIT[0], fs.CIT[1], fs.CIWillink[0], fs.CIWillink[1],
				fs.NormalP, fs.Skewness)
		}
	}
	w.Flush()
	return b.String()
}

// ComparisonText renders the p-value matrix with one row per output.
func ComparisonText(ds *simdata.Dataset, c *simdata.Comparison) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
	fmt.Fprintf(w, "output\t%s\n", strings.Join(ds.SummaryNames, "\t"))
	for o, row := range c.PValues {
		cells := make([]string, len(row))
		for s, p := range row {
			cells[s] = fmt.Sprintf("%.4g", p)
		}
		fmt.Fprintf(w, "%s\t%s\n", ds.Outputs[o], strings.Join(cells, "\t"))
	}
	w.Flush()
	fmt.Fprintf(&b, "\n%d of %d tests below alpha=%.3g\n",
		c.Fails, len(c.PValues)*ds.NumSummaries(), c.Alpha)
	return b.String()
}

// ConflictText renders the pairwise failed-test matrix.
func ConflictText(m *simdata.ConflictMatrix) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
	fmt.Fprintf(w, "\t%s\n", strings.Join(m.Names, "\t"))
	for i, row := range m.Fails {
		cells := make([]string, len(row))
		for j, f := range row {
			cells[j] = fmt.Sprintf("%d", f)
		}
		fmt.Fprintf(w, "%s\t%s\n", m.Names[i], strings.Join(cells, "\t"))
	}
	w.Flush()
	return b.String()
}

// AnalysisLaTeX renders the analysis as a LaTeX tabular using the
// extractor's typeset summary labels.
func AnalysisLaTeX(ds *simdata.Dataset, a *simdata.Analysis) string {
	var b strings.Builder
	b.WriteString("\\begin{tabular}{llrrrrr}\n\\hline\n")
	b.WriteString("Output & Stat. & $\\bar{X}$ & $s^2$ & CI$_t$ & CI$_w$ & SW $p$ \\\\\n\\hline\n")
	for o := 0; o < ds.NumOutputs(); o++ {
		for s := 0; s < ds.NumSummaries(); s++ {
			fs := a.Stats[o*ds.NumSummaries()+s]
			name := ""
			if s == 0 {
				name = escapeLaTeX(ds.Outputs[o])
			}
			fmt.Fprintf(&b, "%s & %s & %.4g & %.4g & $[%.4g, %.4g]$ & $[%.4g, %.4g]$ & %.3g \\\\\n",
				name, ds.SummaryTeX[s], fs.Mean, fs.Variance,
				fs.CIT[0], fs.CIT[1], fs.CIWillink[0], fs.CIWillink[1], fs.NormalP)
		}
		b.WriteString("\\hline\n")
	}
	b.WriteString("\\end{tabular}\n")
	return b.String()
}

// ComparisonLaTeX renders the p-value matrix as a LaTeX tabular.
func ComparisonLaTeX(ds *simdata.Dataset, c *simdata.Comparison) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\\begin{tabular}{l%s}\n\\hline\n", strings.Repeat("r", ds.NumSummaries()))
	b.WriteString("Output")
	for _, s := range ds.SummaryTeX {
		fmt.Fprintf(&b, " & %s", s)
	}
	b.WriteString(" \\\\\n\\hline\n")
	for o, row := range c.PValues {
		b.WriteString(escapeLaTeX(ds.Outputs[o]))
		for _, p := range row {
			fmt.Fprintf(&b, " & %.3g", p)
		}
		b.WriteString(" \\\\\n")
	}
	b.WriteString("\\hline\n\\end{tabular}\n")
	return b.String()
}

var latexEscaper = strings.NewReplacer(
	"_", "\\_", "%", "\\%", "&", "\\&", "#", "\\#", "$", "\\$",
)

func escapeLaTeX(s string) string {
	return latexEscaper.Replace(s)
}
