package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/invoiceflow/invoiceflow-api/internal/domain/billing"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
)

var statusNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func invoiceWith(status string, sentAt, paidAt *time.Time, due time.Time) *entity.Invoice {
	return &entity.Invoice{
		Status:  status,
		SentAt:  sentAt,
		PaidAt:  paidAt,
		DueDate: due,
	}
}

func ts(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
	return &t
}

func TestDeriveStatus_DraftByDefault(t *testing.T) {
	inv := invoiceWith(entity.StatusDraft, nil, nil, statusNow.AddDate(0, 0, 30))
	assert.Equal(t, entity.StatusDraft, billing.DeriveStatus(inv, statusNow))
}

func TestDeriveStatus_SentWhenSentAtSet(t *testing.T) {
	inv := invoiceWith(entity.StatusDraft, ts(2024, 6, 1), nil, statusNow.AddDate(0, 0, 15))
	assert.Equal(t, entity.StatusSent, billing.DeriveStatus(inv, statusNow))
}

func TestDeriveStatus_OverdueWhenSentAndPastDue(t *testing.T) {
	inv := invoiceWith(entity.StatusSent, ts(2024, 5, 1), nil, statusNow.AddDate(0, 0, -1))
	assert.Equal(t, entity.StatusOverdue, billing.DeriveStatus(inv, statusNow))
}

// Due today is not overdue yet; the comparison is on calendar dates.
func TestDeriveStatus_DueTodayStaysSent(t *testing.T) {
	inv := invoiceWith(entity.StatusSent, ts(2024, 5, 1), nil, statusNow)
	assert.Equal(t, entity.StatusSent, billing.DeriveStatus(inv, statusNow))
}

func TestDeriveStatus_PaidWinsOverOverdue(t *testing.T) {
	inv := invoiceWith(entity.StatusOverdue, ts(2024, 5, 1), ts(2024, 6, 10), statusNow.AddDate(0, 0, -30))
	assert.Equal(t, entity.StatusPaid, billing.DeriveStatus(inv, statusNow))
}

// CANCELLED is terminal: no automatic transition applies afterwards, even
// with paid_at set or the due date long past.
func TestDeriveStatus_CancelledIsSticky(t *testing.T) {
	inv := invoiceWith(entity.StatusCancelled, ts(2024, 5, 1), ts(2024, 6, 10), statusNow.AddDate(0, 0, -60))
	assert.Equal(t, entity.StatusCancelled, billing.DeriveStatus(inv, statusNow))
}

// An unsent draft never becomes OVERDUE through DeriveStatus, but the
// overdue listing (IsOverdue) does include it once past due.
func TestIsOverdue_IncludesUnsentDrafts(t *testing.T) {
	inv := invoiceWith(entity.StatusDraft, nil, nil, statusNow.AddDate(0, 0, -5))
	assert.Equal(t, entity.StatusDraft, billing.DeriveStatus(inv, statusNow))
	assert.True(t, billing.IsOverdue(inv, statusNow))
}

func TestIsOverdue_ExcludesPaidAndCancelled(t *testing.T) {
	due := statusNow.AddDate(0, 0, -5)
	assert.False(t, billing.IsOverdue(invoiceWith(entity.StatusPaid, nil, nil, due), statusNow))
	assert.False(t, billing.IsOverdue(invoiceWith(entity.StatusCancelled, nil, nil, due), statusNow))
}
