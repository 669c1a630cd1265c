package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	enc "github.com/AlfredoMejia3001/facturacion/internal/encoding"
)

var ErrEmptyFile = errors.New("csv file has no data rows")

// Parser reads invoice CSV files. Column headers are matched
// case-insensitively against per-field synonym lists, so exports from
// Spanish-language spreadsheets ("Número de Factura", "Monto") import the
// same as English ones.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// synonyms maps a recognized field to the header tokens that select it.
// A header cell matches when it contains any token for the field.
var synonyms = map[Field][]string{
	FieldNumber:   {"invoice", "number", "numero", "número", "factura", "folio"},
	FieldCustomer: {"customer", "client", "cliente", "nombre"},
	FieldDate:     {"date", "fecha"},
	FieldAmount:   {"amount", "monto", "total", "valor", "importe"},
	FieldStatus:   {"status", "estado"},
}

// fieldPriority resolves header cells that match more than one field:
// the cell is assigned to the first field in this order that matches.
var fieldPriority = []Field{FieldNumber, FieldCustomer, FieldDate, FieldStatus, FieldAmount}

// Parse reads the whole file and returns one RawRow per data row. It
// fails before producing any row when the file is structurally unusable:
// unreadable CSV, no data rows, or required columns missing from the
// header.
func (p *Parser) Parse(r io.Reader) ([]RawRow, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var cols map[Field]int

	var rows []RawRow

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		// FieldPos reports the true source line, so diagnostics stay
		// accurate even when the csv reader skips blank lines.
		line, _ := reader.FieldPos(0)

		if cols == nil {
			cols, err = mapHeader(record)
			if err != nil {
				return nil, err
			}

			continue
		}

		if blankRecord(record) {
			continue
		}

		fields := make(map[Field]string, len(cols))

		for field, idx := range cols {
			fields[field] = cellValue(record, idx)
		}

		rows = append(rows, RawRow{Line: line, Fields: fields})
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	return rows, nil
}

// mapHeader assigns each recognized field to a column index. Unrecognized
// columns are ignored; missing required columns abort the import with a
// single diagnostic naming them all.
func mapHeader(header []string) (map[Field]int, error) {
	cols := make(map[Field]int)

	for i, cell := range header {
		field, ok := matchField(cell)
		if !ok {
			continue
		}

		if _, taken := cols[field]; taken {
			continue
		}

		cols[field] = i
	}

	var missing []string

	for _, field := range requiredFields {
		if _, ok := cols[field]; !ok {
			missing = append(missing, string(field))
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return cols, nil
}

func matchField(cell string) (Field, bool) {
	lower := strings.ToLower(strings.TrimSpace(cell))
	if lower == "" {
		return "", false
	}

	for _, field := range fieldPriority {
		for _, token := range synonyms[field] {
			if strings.Contains(lower, token) {
				return field, true
			}
		}
	}

	return "", false
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

func cellValue(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}
