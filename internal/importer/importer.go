package importer

// Field identifies a recognized invoice column in an imported CSV.
type Field string

const (
	FieldNumber   Field = "invoiceNumber"
	FieldCustomer Field = "customerName"
	FieldDate     Field = "date"
	FieldAmount   Field = "amount"
	FieldStatus   Field = "status"
)

// requiredFields must all be recognized in the header before any row is
// processed. Status is optional and defaults to pending.
var requiredFields = []Field{FieldNumber, FieldCustomer, FieldDate, FieldAmount}

// RawRow is a single data row of an imported CSV, keyed by recognized
// field. Line is the 1-based row number in the source file counting the
// header, so diagnostics can point back at the file.
type RawRow struct {
	Line   int
	Fields map[Field]string
}
