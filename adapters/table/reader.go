// Package table provides the file discovery and table parsing
// collaborators consumed by the gatherer.
package table

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"simout/domain/core"
)

// FileReader parses one replication output file into a numeric matrix,
// rows = iterations, columns = outputs. Plain text files are
// whitespace or tab delimited, one iteration per line; .xlsx files are
// read from their first sheet.
type FileReader struct{}

// NewFileReader creates a reader handling both text and Excel files.
func NewFileReader() *FileReader {
	return &FileReader{}
}

// Read dispatches on the file extension.
func (r *FileReader) Read(path string) ([][]float64, error) {
	if strings.ToLower(filepath.Ext(path)) == ".xlsx" {
		return r.readExcel(path)
	}
	return r.readText(path)
}

func (r *FileReader) readText(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows [][]float64
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad numeric value %q: %w", path, lineNo, field, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return checkShape(path, rows)
}

func (r *FileReader) readExcel(path string) ([][]float64, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s of %s: %w", sheet, path, err)
	}

	var rows [][]float64
	for rowNo, cellRow := range cells {
		if len(cellRow) == 0 {
			continue
		}
		row := make([]float64, len(cellRow))
		for i, cell := range cellRow {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: bad numeric value %q: %w", path, rowNo+1, cell, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return checkShape(path, rows)
}

func checkShape(path string, rows [][]float64) ([][]float64, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", path, core.ErrEmptyTable)
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%s: %w: row %d has %d columns, row 1 has %d",
				path, core.ErrRaggedTable, i+1, len(row), width)
		}
	}
	return rows, nil
}
