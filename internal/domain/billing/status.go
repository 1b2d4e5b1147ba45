package billing

import (
	"time"

	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
)

// DeriveStatus returns the status an invoice should carry, given its
// timestamps and the current time. It is evaluated on every save.
//
// Rules, in order:
//   - CANCELLED is sticky: once cancelled the status never changes again.
//   - paid_at set        -> PAID
//   - sent and past due  -> OVERDUE
//   - sent_at set        -> SENT
//   - otherwise          -> DRAFT
//
// There is no reverse flow: no un-send, no un-cancel.
func DeriveStatus(inv *entity.Invoice, now time.Time) string {
	if inv.Status == entity.StatusCancelled {
		return entity.StatusCancelled
	}
	switch {
	case inv.PaidAt != nil:
		return entity.StatusPaid
	case inv.SentAt != nil && pastDue(inv.DueDate, now):
		return entity.StatusOverdue
	case inv.SentAt != nil:
		return entity.StatusSent
	default:
		return entity.StatusDraft
	}
}

// IsOverdue reports whether the invoice is past due and still collectible
// (not PAID, not CANCELLED). Unlike DeriveStatus it does not require the
// invoice to have been sent, matching the overdue listing and dashboard.
func IsOverdue(inv *entity.Invoice, now time.Time) bool {
	if inv.Status == entity.StatusPaid || inv.Status == entity.StatusCancelled {
		return false
	}
	return pastDue(inv.DueDate, now)
}

// pastDue compares calendar dates, not instants: an invoice due today is not
// yet overdue.
func pastDue(dueDate, now time.Time) bool {
	due := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}
