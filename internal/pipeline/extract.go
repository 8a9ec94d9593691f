package pipeline

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// minFields is the shortest record still treated as a data row.
const minFields = 5

const utf8BOM = "\xef\xbb\xbf"

// Column names of the spreadsheet export.
const (
	colNumber = "EPEA_Nro"
	colYear   = "Year"
	colMonth  = "Month_"
	colMonthN = "Month"
	colType   = "Tipo_visita"
	colShip   = "Barco"
	naValue   = "NA"
)

// VariableColumns lists the variable columns in output order. A variable
// was collected when its cell is neither empty nor NA.
var VariableColumns = []string{"Temp", "Sal", "NTS", "OD", "pH", "AT", "Cla", "ABSO", "CDOM", "PP", "BACT", "FITO", "ZOO", "ICTIO"}

// Row is one line of the spreadsheet.
type Row struct {
	Line      int
	Number    string
	Year      int
	Month     domain.Month
	Type      string
	Ships     string
	Variables []string
}

// IsVisit reports whether the row records a ship visit. Rows numbered or
// shipped NA only mark the month as part of the series.
func (r Row) IsVisit() bool {
	return r.Number != naValue && r.Ships != naValue && strings.TrimSpace(r.Ships) != ""
}

// Extraction is the result of reading the source.
type Extraction struct {
	Rows    []Row
	Skipped int
}

// CSVExtractor reads a semicolon-delimited UTF-8 export, with or without
// a byte order mark.
type CSVExtractor struct {
	path   string
	logger *slog.Logger
}

// NewCSVExtractor creates an extractor for the file at path.
func NewCSVExtractor(path string, logger *slog.Logger) *CSVExtractor {
	return &CSVExtractor{path: path, logger: logger}
}

// Extract reads every row of the file.
func (e *CSVExtractor) Extract(ctx context.Context) (Extraction, error) {
	if err := ctx.Err(); err != nil {
		return Extraction{}, err
	}
	f, err := os.Open(e.path)
	if err != nil {
		return Extraction{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	return ReadRows(f, e.logger)
}

// ReadRows parses the export from r. Records with fewer than five fields,
// an unparseable year or an unknown month are skipped and counted.
func ReadRows(r io.Reader, logger *slog.Logger) (Extraction, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && string(bom) == utf8BOM {
		_, _ = br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return Extraction{}, fmt.Errorf("read csv header: %w", err)
	}
	cols, err := indexColumns(header)
	if err != nil {
		return Extraction{}, err
	}

	var out Extraction
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Extraction{}, fmt.Errorf("read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if len(rec) < minFields {
			logger.Warn("skipping short row", "line", line, "fields", len(rec))
			out.Skipped++
			continue
		}
		row, err := cols.row(rec, line)
		if err != nil {
			logger.Warn("skipping row", "line", line, "error", err)
			out.Skipped++
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

type columns struct {
	index map[string]int
}

func indexColumns(header []string) (columns, error) {
	c := columns{index: make(map[string]int, len(header))}
	for i, h := range header {
		c.index[strings.TrimSpace(h)] = i
	}
	for _, name := range []string{colNumber, colYear, colType, colShip} {
		if _, ok := c.index[name]; !ok {
			return columns{}, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	_, hasKey := c.index[colMonth]
	_, hasNum := c.index[colMonthN]
	if !hasKey && !hasNum {
		return columns{}, fmt.Errorf("%w: %s or %s", ErrMissingColumn, colMonth, colMonthN)
	}
	return c, nil
}

func (c columns) get(rec []string, name string) string {
	i, ok := c.index[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func (c columns) row(rec []string, line int) (Row, error) {
	year, err := strconv.Atoi(c.get(rec, colYear))
	if err != nil {
		return Row{}, fmt.Errorf("parse year: %w", err)
	}

	rawMonth := c.get(rec, colMonth)
	if rawMonth == "" {
		rawMonth = c.get(rec, colMonthN)
	}
	month, err := domain.ParseMonth(rawMonth)
	if err != nil {
		return Row{}, err
	}

	row := Row{
		Line:   line,
		Number: c.get(rec, colNumber),
		Year:   year,
		Month:  month,
		Type:   c.get(rec, colType),
		Ships:  c.get(rec, colShip),
	}
	for _, v := range VariableColumns {
		if val := c.get(rec, v); val != "" && val != naValue {
			row.Variables = append(row.Variables, v)
		}
	}
	return row, nil
}
