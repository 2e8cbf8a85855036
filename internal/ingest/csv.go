package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AvaniDange/AutoDashAI/internal/dataset"
)

// ReadCSV parses CSV into a table. Tolerant by design: variable field
// counts, bare quotes, semicolon delimiters (retried when comma parsing
// fails on the header), and malformed rows are skipped rather than fatal.
func ReadCSV(r io.ReadSeeker) (*dataset.Table, error) {
	reader := newReader(r, ',')
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read headers: %w", err)
	}

	// A single header cell containing semicolons means the file uses ';' as
	// its delimiter; reparse from the start.
	if len(headers) == 1 && strings.Contains(headers[0], ";") {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to rewind input: %w", err)
		}
		reader = newReader(r, ';')
		headers, err = reader.Read()
		if err != nil {
			return nil, fmt.Errorf("failed to read headers: %w", err)
		}
	}

	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	rows := [][]string{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip malformed rows
			continue
		}
		rows = append(rows, record)
	}

	return dataset.New(headers, rows), nil
}

func newReader(r io.Reader, comma rune) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1 // Allow variable fields
	reader.LazyQuotes = true    // Allow bare quotes in non-quoted fields
	reader.TrimLeadingSpace = true
	return reader
}

// WriteCSV serializes a table back to CSV with its current column order.
func WriteCSV(w io.Writer, t *dataset.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	cols := t.Columns()
	for i := 0; i < t.RowCount(); i++ {
		record := make([]string, len(cols))
		for j, col := range cols {
			record[j] = cellString(col.Cells[i])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func cellString(c dataset.Cell) string {
	switch c.Kind {
	case dataset.CellNumber:
		return strconv.FormatFloat(c.Num, 'g', -1, 64)
	case dataset.CellString:
		return c.Str
	}
	return ""
}

// ReadUpload dispatches on the uploaded file's extension. CSV is the
// default for unknown extensions.
func ReadUpload(filename string, r io.ReadSeeker) (*dataset.Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return ReadExcel(r)
	default:
		return ReadCSV(r)
	}
}
