package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"simout/domain/simdata"
)

// ExportWorkbook writes each dataset and its analysis into one xlsx
// workbook, one sheet per dataset plus a sheet per analysis.
func ExportWorkbook(path string, datasets []*simdata.Dataset, analyses []*simdata.Analysis) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, ds := range datasets {
		sheet := ds.Name
		if sheet == "" {
			sheet = fmt.Sprintf("dataset%d", i+1)
		}
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return err
			}
		}
		if err := writeDatasetSheet(f, sheet, ds); err != nil {
			return err
		}
	}

	for _, a := range analyses {
		sheet := a.DatasetName + " analysis"
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		if err := writeAnalysisSheet(f, sheet, a); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeDatasetSheet(f *excelize.File, sheet string, ds *simdata.Dataset) error {
	// Header: one flattened (output, summary) label per column.
	for o := 0; o < ds.NumOutputs(); o++ {
		for s := 0; s < ds.NumSummaries(); s++ {
			cell, err := excelize.CoordinatesToCellName(o*ds.NumSummaries()+s+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, ds.FocalLabel(o, s)); err != nil {
				return err
			}
		}
	}
	for r, row := range ds.Data {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeAnalysisSheet(f *excelize.File, sheet string, a *simdata.Analysis) error {
	headers := []string{"measure", "mean", "variance", "ci_t_lo", "ci_t_hi", "ci_w_lo", "ci_w_hi", "normal_p", "skewness"}
	for c, h := range headers {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for i, fs := range a.Stats {
		values := []interface{}{i, fs.Mean, fs.Variance, fs.CIT[0], fs.CIT[1], fs.CIWillink[0], fs.CIWillink[1], fs.NormalP, fs.Skewness}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
