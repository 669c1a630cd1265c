package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlfredoMejia3001/facturacion/internal/importer"
)

func TestParser_EnglishHeaders(t *testing.T) {
	csv := strings.Join([]string{
		"Invoice Number,Customer,Date,Status,Amount (USD)",
		`INV-2024-010,"Empresa ABC, S.A.",2024-03-01,Paid,1250.50`,
		"INV-2024-011,Comercial XYZ,2024-03-02,Pending,900.00",
	}, "\n")

	rows, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "INV-2024-010", rows[0].Fields[importer.FieldNumber])
	assert.Equal(t, "Empresa ABC, S.A.", rows[0].Fields[importer.FieldCustomer])
	assert.Equal(t, "2024-03-01", rows[0].Fields[importer.FieldDate])
	assert.Equal(t, "Paid", rows[0].Fields[importer.FieldStatus])
	assert.Equal(t, "1250.50", rows[0].Fields[importer.FieldAmount])

	assert.Equal(t, 3, rows[1].Line)
	assert.Equal(t, "Comercial XYZ", rows[1].Fields[importer.FieldCustomer])
}

func TestParser_SpanishSynonymHeaders(t *testing.T) {
	csv := strings.Join([]string{
		"Número de Factura,Cliente,Fecha,Estado,Monto (USD)",
		"INV-2024-020,Servicios DEF,2024-04-05,Pagada,750.25",
	}, "\n")

	rows, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "INV-2024-020", rows[0].Fields[importer.FieldNumber])
	assert.Equal(t, "Servicios DEF", rows[0].Fields[importer.FieldCustomer])
	assert.Equal(t, "Pagada", rows[0].Fields[importer.FieldStatus])
	assert.Equal(t, "750.25", rows[0].Fields[importer.FieldAmount])
}

func TestParser_StatusColumnOptional(t *testing.T) {
	csv := strings.Join([]string{
		"Invoice,Customer,Date,Total",
		"INV-1,Cliente Uno,2024-05-01,10.00",
	}, "\n")

	rows, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Fields[importer.FieldStatus])
}

func TestParser_MissingRequiredColumns(t *testing.T) {
	csv := strings.Join([]string{
		"Customer,Date",
		"Cliente Uno,2024-05-01",
	}, "\n")

	_, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
	assert.Contains(t, err.Error(), "amount")
	assert.Contains(t, err.Error(), "invoiceNumber")
}

func TestParser_EmptyFile(t *testing.T) {
	_, err := importer.NewParser().Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, importer.ErrEmptyFile)

	_, err = importer.NewParser().Parse(strings.NewReader("Invoice,Customer,Date,Amount\n"))
	assert.ErrorIs(t, err, importer.ErrEmptyFile)
}

func TestParser_SkipsBlankRowsKeepsLineNumbers(t *testing.T) {
	csv := strings.Join([]string{
		"Invoice,Customer,Date,Amount",
		"",
		"INV-1,Cliente Uno,2024-05-01,10.00",
	}, "\n")

	rows, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Line)
}

func TestParser_Windows1252Input(t *testing.T) {
	// "Número de Factura,Cliente,Fecha,Monto\nINV-1,Peña,2024-05-01,10.00"
	// with ú (0xFA) and ñ (0xF1) in Windows-1252.
	raw := []byte("N\xFAmero de Factura,Cliente,Fecha,Monto\nINV-1,Pe\xF1a,2024-05-01,10.00")

	rows, err := importer.NewParser().Parse(strings.NewReader(string(raw)))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Peña", rows[0].Fields[importer.FieldCustomer])
}
