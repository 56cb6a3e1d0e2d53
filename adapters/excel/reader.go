// Package excel loads paired measurement series from spreadsheet-style rows.
//
// The expected layout is one row per subject with an even number of value
// columns: the first half are the X-method replicates, the second half the
// Y-method replicates. Blank trailing cells mean a subject has fewer
// replicates than its neighbours, which yields the unequal-replicate mode
// downstream. A non-numeric first row is treated as a header and skipped.
package excel

import (
	"fmt"
	"strconv"
	"strings"

	"goagree/domain/agreement"
	"goagree/domain/core"

	"github.com/xuri/excelize/v2"
)

// Reader loads paired series from an .xlsx workbook.
type Reader struct {
	filePath string
	sheet    string
}

// NewReader creates a reader for the given workbook. An empty sheet name
// selects the first sheet.
func NewReader(filePath, sheet string) *Reader {
	return &Reader{filePath: filePath, sheet: sheet}
}

// Read loads the workbook and parses its rows into paired subjects.
func (r *Reader) Read() (x, y agreement.Subjects, err error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	return ParseRows(rows)
}

// ParseRows converts raw string rows into paired subjects. It is shared by
// the xlsx reader and the CLI's CSV path.
func ParseRows(rows [][]string) (x, y agreement.Subjects, err error) {
	if len(rows) > 0 && isHeader(rows[0]) {
		rows = rows[1:]
	}

	// Spreadsheet readers drop trailing blanks, so pad every row back to the
	// widest one before splitting it into its X and Y halves.
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width%2 != 0 {
		return nil, nil, core.NewShapeError(
			fmt.Sprintf("rows have %d value columns; need an even count (x replicates then y replicates)", width))
	}

	for i, row := range rows {
		if blankRow(row) {
			continue
		}
		cells := make([]string, width)
		copy(cells, row)

		half := width / 2
		xs, err := parseValues(cells[:half], i+1)
		if err != nil {
			return nil, nil, err
		}
		ys, err := parseValues(cells[half:], i+1)
		if err != nil {
			return nil, nil, err
		}
		x = append(x, xs)
		y = append(y, ys)
	}

	if len(x) == 0 {
		return nil, nil, core.NewInsufficientDataError("no data rows found")
	}
	return x, y, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseValues(cells []string, rowNum int) ([]float64, error) {
	values := make([]float64, 0, len(cells))
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, core.NewShapeError(
				fmt.Sprintf("row %d has non-numeric value %q", rowNum, cell))
		}
		values = append(values, v)
	}
	return values, nil
}

func isHeader(row []string) bool {
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return true
		}
	}
	return false
}
