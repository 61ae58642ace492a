// Package testkit generates synthetic simulation output files for
// tests: deterministic, seeded time series that look like replication
// output (transient growth followed by a noisy steady state).
package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Generator produces synthetic replication tables from a fixed seed.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a seeded generator.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Table generates one replication: iters rows by outputs columns. Each
// output follows a logistic approach to its own asymptote with
// gaussian noise, so steady-state summaries are well defined.
func (g *Generator) Table(iters, outputs int) [][]float64 {
	asymptote := make([]float64, outputs)
	noise := make([]float64, outputs)
	for c := range asymptote {
		asymptote[c] = 100 * float64(c+1)
		noise[c] = 1 + float64(c)
	}

	table := make([][]float64, iters)
	for r := range table {
		row := make([]float64, outputs)
		t := float64(r+1) / float64(iters)
		for c := range row {
			level := asymptote[c] * (1 - math.Exp(-6*t))
			row[c] = level + g.rng.NormFloat64()*noise[c]
		}
		table[r] = row
	}
	return table
}

// WriteReplications writes count tab-separated replication files named
// <prefix>_r01.tsv .. into dir and returns the glob pattern matching
// them.
func (g *Generator) WriteReplications(dir, prefix string, count, iters, outputs int) (string, error) {
	for i := 0; i < count; i++ {
		table := g.Table(iters, outputs)
		path := filepath.Join(dir, fmt.Sprintf("%s_r%02d.tsv", prefix, i+1))
		if err := WriteTSV(path, table); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, prefix+"_r*.tsv"), nil
}

// WriteTSV writes one numeric table as tab-separated text.
func WriteTSV(path string, table [][]float64) error {
	var b strings.Builder
	for _, row := range table {
		for i, v := range row {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
