package simdata

import (
	"fmt"

	"simout/domain/core"
)

// Dataset is the canonical data object for all statistical computation.
// It holds the focal-measure summaries gathered from one batch of
// replication output files for a single model implementation or
// configuration. It is built once by the gatherer and never mutated.
type Dataset struct {
	ID   core.DatasetID `json:"id"`
	Name string         `json:"name"`

	// Outputs are the model output names, e.g. sheep population,
	// wolf population, grass quantity.
	Outputs []string `json:"outputs"`

	// SummaryNames and SummaryTeX are parallel label slices fixed by
	// the extraction strategy, independent of any particular file.
	SummaryNames []string `json:"summary_names"`
	SummaryTeX   []string `json:"summary_tex"`

	// Data holds one row per replication file. Columns are flattened
	// (output, summary) pairs with the summary index varying fastest:
	// column = output*len(SummaryNames) + summary.
	Data [][]float64 `json:"data"`

	CreatedAt core.Timestamp `json:"created_at"`
}

// New builds a validated dataset.
func New(name string, outputs, summaryNames, summaryTeX []string, data [][]float64) (*Dataset, error) {
	ds := &Dataset{
		ID:           core.DatasetID(core.NewID()),
		Name:         name,
		Outputs:      outputs,
		SummaryNames: summaryNames,
		SummaryTeX:   summaryTeX,
		Data:         data,
		CreatedAt:    core.Now(),
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// AutoOutputs generates output names "o1".."oN" for callers that only
// know how many outputs each file carries.
func AutoOutputs(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("o%d", i+1)
	}
	return names
}

// NumOutputs returns the number of model outputs.
func (ds *Dataset) NumOutputs() int { return len(ds.Outputs) }

// NumSummaries returns the number of summaries per output.
func (ds *Dataset) NumSummaries() int { return len(ds.SummaryNames) }

// NumObservations returns the number of replications (rows).
func (ds *Dataset) NumObservations() int { return len(ds.Data) }

// NumMeasures returns the total number of focal measures (columns).
func (ds *Dataset) NumMeasures() int { return ds.NumOutputs() * ds.NumSummaries() }

// Validate ensures the dataset is internally consistent.
func (ds *Dataset) Validate() error {
	if len(ds.Data) == 0 {
		return core.ErrEmptyTable
	}
	if len(ds.SummaryNames) != len(ds.SummaryTeX) {
		return fmt.Errorf("summary label slices differ in length: %d vs %d",
			len(ds.SummaryNames), len(ds.SummaryTeX))
	}
	want := ds.NumMeasures()
	for i, row := range ds.Data {
		if len(row) != want {
			return fmt.Errorf("row %d has %d columns, expected %d (outputs %d x summaries %d)",
				i, len(row), want, ds.NumOutputs(), ds.NumSummaries())
		}
	}
	return nil
}

// Column returns the observations for flattened column index c.
func (ds *Dataset) Column(c int) []float64 {
	col := make([]float64, len(ds.Data))
	for i, row := range ds.Data {
		col[i] = row[c]
	}
	return col
}

// FocalMeasure returns the observations for one (output, summary) pair.
func (ds *Dataset) FocalMeasure(output, summary int) []float64 {
	return ds.Column(output*ds.NumSummaries() + summary)
}

// FocalLabel returns a human-readable label for one focal measure,
// e.g. "mean(sheep)".
func (ds *Dataset) FocalLabel(output, summary int) string {
	return fmt.Sprintf("%s(%s)", ds.SummaryNames[summary], ds.Outputs[output])
}

// Measures returns the data transposed to focal measures x observations,
// the orientation the distributional analyzer consumes.
func (ds *Dataset) Measures() [][]float64 {
	rows := make([][]float64, ds.NumMeasures())
	for c := range rows {
		rows[c] = ds.Column(c)
	}
	return rows
}
