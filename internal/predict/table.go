package predict

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrMissingColumns is wrapped by ReadTable and Fit when required columns are absent.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrInvalidValue is wrapped when a cell cannot be parsed as a number.
	ErrInvalidValue = errors.New("invalid numeric value")

	// ErrEmptyTable is returned for a table without data rows.
	ErrEmptyTable = errors.New("table has no rows")
)

// MissingColumnsError lists every required column a table lacks.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: [%s]", ErrMissingColumns, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

// Table is a CSV table held as strings. Columns keep the order they were read or added in.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable parses a CSV table with a header row and checks it carries every input column.
//
// Parameters:
//   - r: the CSV source
//
// Returns:
//   - *Table: the parsed table
//   - error: a *MissingColumnsError naming all absent columns, or a CSV parse error
func ReadTable(r io.Reader) (*Table, error) {
	t, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	if err := t.require(InputColumns); err != nil {
		return nil, err
	}
	return t, nil
}

func readCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: %w", ErrEmptyTable)
	}
	header := records[0]
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return &Table{Header: header, Rows: records[1:]}, nil
}

func (t *Table) require(columns []string) error {
	var missing []string
	for _, c := range columns {
		if t.Column(c) < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// Column returns the index of the named column, or -1.
//
// Parameters:
//   - name: the header name
//
// Returns:
//   - int: the column index or -1
func (t *Table) Column(name string) int {
	return slices.Index(t.Header, name)
}

// SetColumn overwrites the named column, or appends it when absent.
//
// Parameters:
//   - name: the header name
//   - values: one value per row
func (t *Table) SetColumn(name string, values []float64) {
	idx := t.Column(name)
	if idx < 0 {
		t.Header = append(t.Header, name)
		idx = len(t.Header) - 1
	}
	for i, row := range t.Rows {
		for len(row) <= idx {
			row = append(row, "")
		}
		row[idx] = strconv.FormatFloat(values[i], 'g', -1, 64)
		t.Rows[i] = row
	}
}

// Float returns the numeric value of a column for every row.
//
// Parameters:
//   - name: the header name
//
// Returns:
//   - []float64: the values
//   - error: ErrMissingColumns or ErrInvalidValue
func (t *Table) Float(name string) ([]float64, error) {
	idx := t.Column(name)
	if idx < 0 {
		return nil, &MissingColumnsError{Columns: []string{name}}
	}
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		var cell string
		if idx < len(row) {
			cell = strings.TrimSpace(row[idx])
		}
		if cell == "" && blankAsZero[name] {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d column %s: %q: %w", i+1, name, cell, ErrInvalidValue)
		}
		out[i] = v
	}
	return out, nil
}

// WriteTable writes the table as CSV with its header.
//
// Parameters:
//   - w: the destination
//
// Returns:
//   - error: a write error
func (t *Table) WriteTable(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}
