// Package billing holds the pure derived-value rules of the invoicing
// domain: invoice numbering, status derivation and total calculation.
// Nothing in here touches the database or the clock.
package billing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/invoiceflow/invoiceflow-api/internal/domain"
)

// NumberPrefix is the fixed prefix of every invoice number.
const NumberPrefix = "INV"

// FormatNumber builds an invoice number: INV-{year}-{seq zero-padded to 5}.
func FormatNumber(year, seq int) string {
	return fmt.Sprintf("%s-%d-%05d", NumberPrefix, year, seq)
}

// ParseSequence extracts the numeric sequence from an invoice number.
// Returns ErrInvalidInput if the number does not match INV-{year}-{seq}.
func ParseSequence(number string) (int, error) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != NumberPrefix {
		return 0, fmt.Errorf("parse invoice number %q: %w", number, domain.ErrInvalidInput)
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil || seq < 1 {
		return 0, fmt.Errorf("parse invoice number %q: %w", number, domain.ErrInvalidInput)
	}
	return seq, nil
}

// NextNumber computes the number that follows lastNumber within the given
// year. lastNumber is the highest existing number for the owning user and
// year, or empty when none exists yet; the first number of a year is
// INV-{year}-00001.
//
// Callers read lastNumber and insert the result in the same transaction, but
// nothing serializes concurrent creations for the same user, so two parallel
// requests can derive the same number and one insert will fail on the unique
// constraint. Known gap, kept as-is.
func NextNumber(year int, lastNumber string) (string, error) {
	if lastNumber == "" {
		return FormatNumber(year, 1), nil
	}
	seq, err := ParseSequence(lastNumber)
	if err != nil {
		return "", err
	}
	return FormatNumber(year, seq+1), nil
}
