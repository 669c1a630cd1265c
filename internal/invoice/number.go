package invoice

import (
	"fmt"
	"regexp"
	"strconv"
)

const numberPrefix = "INV"

var numberPattern = regexp.MustCompile(`^INV-(\d{4})-(\d{3,})$`)

// NextNumber generates the next invoice number for the given year in the
// form INV-YYYY-NNN. It scans the existing numbers for the highest numeric
// suffix belonging to that year and increments it; with no prior numbers
// for the year the sequence starts at 001. Uniqueness holds only under a
// single writer.
func NextNumber(invoices []Invoice, year int) string {
	maxSuffix := 0

	for _, inv := range invoices {
		m := numberPattern.FindStringSubmatch(inv.Number)
		if m == nil {
			continue
		}

		if y, _ := strconv.Atoi(m[1]); y != year {
			continue
		}

		if n, _ := strconv.Atoi(m[2]); n > maxSuffix {
			maxSuffix = n
		}
	}

	return fmt.Sprintf("%s-%d-%03d", numberPrefix, year, maxSuffix+1)
}
