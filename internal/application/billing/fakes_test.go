package billing_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoiceflow/invoiceflow-api/internal/domain/billing"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/repository"
)

// In-memory repository fakes. They mirror the scoping contract of the
// postgres adapters: lookups by a foreign user's id return (nil, nil).

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: map[string]*entity.User{}} }

func (r *memUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

type memClientRepo struct {
	clients map[string]*entity.Client
}

func newMemClientRepo() *memClientRepo { return &memClientRepo{clients: map[string]*entity.Client{}} }

func (r *memClientRepo) Create(c *entity.Client) error {
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *memClientRepo) GetByIDAndUser(id, userID string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memClientRepo) GetByUserAndEmail(userID, email string) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.UserID == userID && c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memClientRepo) ListByUser(userID string, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.clients {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *memClientRepo) Update(c *entity.Client) error {
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *memClientRepo) Delete(id string) error {
	delete(r.clients, id)
	return nil
}

func (r *memClientRepo) Totals(clientID string) (repository.ClientTotals, error) {
	return repository.ClientTotals{
		TotalInvoiced:    decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
	}, nil
}

type memInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	items    map[string][]*entity.InvoiceItem
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{
		invoices: map[string]*entity.Invoice{},
		items:    map[string][]*entity.InvoiceItem{},
	}
}

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	cp := *item
	r.items[item.InvoiceID] = append(r.items[item.InvoiceID], &cp)
	return nil
}

func (r *memInvoiceRepo) DeleteItems(invoiceID string) error {
	delete(r.items, invoiceID)
	return nil
}

func (r *memInvoiceRepo) GetByIDAndUser(id, userID string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok || inv.UserID != userID {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvoiceRepo) GetItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	items := r.items[invoiceID]
	out := make([]*entity.InvoiceItem, 0, len(items))
	for _, it := range items {
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *memInvoiceRepo) ListByUser(userID string, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.UserID != userID {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		if f.ClientID != "" && inv.ClientID != f.ClientID {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f.Limit, f.Offset), nil
}

func (r *memInvoiceRepo) ListOverdue(userID string, now time.Time) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.UserID != userID {
			continue
		}
		if billing.IsOverdue(inv, now) {
			cp := *inv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (r *memInvoiceRepo) Update(inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) Delete(id string) error {
	delete(r.invoices, id)
	delete(r.items, id)
	return nil
}

func (r *memInvoiceRepo) LastNumberForYear(userID string, year int) (string, error) {
	prefix := billing.FormatNumber(year, 0)
	prefix = prefix[:strings.LastIndex(prefix, "-")+1]
	max := ""
	for _, inv := range r.invoices {
		if inv.UserID != userID {
			continue
		}
		if strings.HasPrefix(inv.InvoiceNumber, prefix) && inv.InvoiceNumber > max {
			max = inv.InvoiceNumber
		}
	}
	return max, nil
}

type memPaymentRepo struct {
	payments map[string]*entity.Payment
	invoices *memInvoiceRepo
}

func newMemPaymentRepo(invoices *memInvoiceRepo) *memPaymentRepo {
	return &memPaymentRepo{payments: map[string]*entity.Payment{}, invoices: invoices}
}

func (r *memPaymentRepo) Create(p *entity.Payment) error {
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *memPaymentRepo) GetByIDAndUser(id, userID string) (*entity.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	inv, ok := r.invoices.invoices[p.InvoiceID]
	if !ok || inv.UserID != userID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPaymentRepo) ListByUser(userID string, f repository.PaymentFilter) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.payments {
		inv, ok := r.invoices.invoices[p.InvoiceID]
		if !ok || inv.UserID != userID {
			continue
		}
		if f.InvoiceID != "" && p.InvoiceID != f.InvoiceID {
			continue
		}
		if f.Method != "" && p.Method != f.Method {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentDate.After(out[j].PaymentDate) })
	return paginate(out, f.Limit, f.Offset), nil
}

func (r *memPaymentRepo) Update(p *entity.Payment) error {
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *memPaymentRepo) Delete(id string) error {
	delete(r.payments, id)
	return nil
}

func (r *memPaymentRepo) SumForInvoice(invoiceID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

// memTxRunner runs the callback directly against the shared fakes; the tests
// exercise ordering and derived state, not transaction isolation.
type memTxRunner struct {
	invoices *memInvoiceRepo
	payments *memPaymentRepo
}

func (r *memTxRunner) RunBilling(_ context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return fn(r.invoices, r.payments)
}

type fakePDFGenerator struct{}

func (fakePDFGenerator) Generate(*entity.User, *entity.Client, *entity.Invoice, []*entity.InvoiceItem) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
