package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoiceflow/invoiceflow-api/internal/domain/billing"
)

func TestNextNumber_FirstOfYear(t *testing.T) {
	n, err := billing.NextNumber(2024, "")
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-00001", n)
}

func TestNextNumber_IncrementsByOne(t *testing.T) {
	n, err := billing.NextNumber(2024, "INV-2024-00001")
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-00002", n)

	n, err = billing.NextNumber(2024, n)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-00003", n)
}

// Padding must survive past five digits rather than wrap or truncate.
func TestNextNumber_BeyondPadding(t *testing.T) {
	n, err := billing.NextNumber(2024, "INV-2024-99999")
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-100000", n)
}

// A new year restarts the sequence: the caller passes the last number for
// that year, which is empty when none exists.
func TestNextNumber_NewYearStartsAtOne(t *testing.T) {
	n, err := billing.NextNumber(2025, "")
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-00001", n)
}

func TestNextNumber_MalformedLastNumber(t *testing.T) {
	for _, bad := range []string{"INV-2024", "FAC-2024-00001", "INV-2024-abc", "INV-2024-00000"} {
		_, err := billing.NextNumber(2024, bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseSequence(t *testing.T) {
	seq, err := billing.ParseSequence("INV-2024-00042")
	require.NoError(t, err)
	assert.Equal(t, 42, seq)
}
