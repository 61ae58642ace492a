// Package gather applies an extraction strategy to every file matching
// a selection pattern and stacks the per-file summaries into a tagged
// dataset.
package gather

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"simout/domain/core"
	"simout/domain/simdata"
	"simout/internal"
	"simout/internal/extract"
	"simout/ports"
)

// Gatherer wires the external collaborators to an extraction strategy.
// The strategy is fixed at construction; all files in one Gather call
// share its summary identities.
type Gatherer struct {
	lister    ports.FileLister
	reader    ports.TableReader
	extractor extract.Extractor

	// MaxParallel caps concurrent file reads. Zero means no cap.
	MaxParallel int
}

// New creates a gatherer.
func New(lister ports.FileLister, reader ports.TableReader, extractor extract.Extractor) *Gatherer {
	return &Gatherer{lister: lister, reader: reader, extractor: extractor}
}

// Gather resolves pattern to a file list, extracts every file and
// returns the stacked dataset. A single bad file fails the whole call;
// outstanding reads are cancelled. Row order always follows the
// lister's file order regardless of read completion order.
func (g *Gatherer) Gather(ctx context.Context, name, pattern string, outputs []string) (*simdata.Dataset, error) {
	files, err := g.lister.List(pattern)
	if err != nil {
		return nil, fmt.Errorf("listing %q: %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, core.NewNoFilesError(pattern)
	}
	internal.DefaultLogger.Debug("gather %s: %d files match %q", name, len(files), pattern)

	plain, tex := g.extractor.Names()
	numOutputs := len(outputs)
	numSummaries := len(plain)

	data := make([][]float64, len(files))

	eg, ctx := errgroup.WithContext(ctx)
	if g.MaxParallel > 0 {
		eg.SetLimit(g.MaxParallel)
	}
	for i, file := range files {
		i, file := i, file
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			table, err := g.reader.Read(file)
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}
			summary, err := g.extractor.Extract(table, numOutputs)
			if err != nil {
				return fmt.Errorf("extracting %s: %w", file, err)
			}
			data[i] = flatten(summary, numOutputs, numSummaries)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	internal.DefaultLogger.Info("gathered %s: %d observations x %d measures",
		name, len(files), numOutputs*numSummaries)

	return simdata.New(name, outputs, plain, tex, data)
}

// flatten reorders a (numSummaries x numOutputs) summary matrix into
// one dataset row with the summary index varying fastest within each
// output block.
func flatten(summary [][]float64, numOutputs, numSummaries int) []float64 {
	row := make([]float64, numOutputs*numSummaries)
	for o := 0; o < numOutputs; o++ {
		for s := 0; s < numSummaries; s++ {
			row[o*numSummaries+s] = summary[s][o]
		}
	}
	return row
}
