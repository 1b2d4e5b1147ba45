// Package pdf renders the printable invoice document.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Business name        │  Invoice number + dates      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FROM: issuer address / phone / email                        │
//	│  BILL TO: client name + company + contact                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qty | Description | Unit Price | Amount              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / Tax / TOTAL DUE                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: notes + payment terms                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appbilling "github.com/invoiceflow/invoiceflow-api/internal/application/billing"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implements billing.InvoicePDFGenerator with Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator builds the generator.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Generate renders the invoice and returns the PDF bytes.
func (g *MarotoPDFGenerator) Generate(
	issuer *entity.User,
	client *entity.Client,
	invoice *entity.Invoice,
	items []*entity.InvoiceItem,
) ([]byte, error) {
	money := newMoneyFormatter(issuer.Currency)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+invoice.InvoiceNumber, true).
		WithAuthor(issuerName(issuer), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, issuer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(issuerRow(issuer))
	m.AddRows(billToRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items, money) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice, money))

	if invoice.Notes != "" || invoice.Terms != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		for _, r := range footerRows(invoice) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: business name (left), invoice number + dates (right).
func headerRow(invoice *entity.Invoice, issuer *entity.User) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(issuerName(issuer), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Issued: %s   Due: %s",
				invoice.IssueDate.Format("Jan 2, 2006"),
				invoice.DueDate.Format("Jan 2, 2006"),
			), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

// issuerRow: the business issuing the invoice.
func issuerRow(issuer *entity.User) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("FROM", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Tel: %s   |   Email: %s",
				nonEmpty(issuer.BusinessAddress, "—"),
				nonEmpty(issuer.Phone, "—"),
				issuer.Email,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// billToRow: the client being billed.
func billToRow(client *entity.Client) core.Row {
	name := "—"
	company := "—"
	email := "—"
	phone := "—"
	if client != nil {
		name = client.Name
		company = nonEmpty(client.CompanyName, "—")
		email = nonEmpty(client.Email, "—")
		phone = nonEmpty(client.Phone, "—")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s   |   Email: %s   |   Tel: %s",
				company, email, phone,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Description", 6, align.Left),
		h("Unit Price", 2, align.Right),
		h("Amount", 3, align.Right),
	)
}

// tableItemRows: one row per line item.
func tableItemRows(items []*entity.InvoiceItem, money moneyFormatter) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				money(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				money(it.Amount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: subtotal, tax and total, right-aligned.
func totalsRow(invoice *entity.Invoice, money moneyFormatter) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("Tax:"),
			grandLabel("TOTAL DUE:"),
		),
		col.New(3).Add(
			value(money(invoice.Subtotal)),
			value(money(invoice.TaxAmount)),
			grandValue(money(invoice.TotalAmount)),
		),
		col.New(3),
	)
}

// footerRows: notes and payment terms.
func footerRows(invoice *entity.Invoice) []core.Row {
	var rows []core.Row
	if invoice.Terms != "" {
		rows = append(rows,
			row.New(5).Add(col.New(12).Add(
				text.New("PAYMENT TERMS", props.Text{
					Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1,
				}),
			)),
			row.New(8).Add(col.New(12).Add(
				text.New(invoice.Terms, props.Text{Size: 7.5, Color: colorGray, Top: 1}),
			)),
		)
	}
	if invoice.Notes != "" {
		rows = append(rows,
			row.New(5).Add(col.New(12).Add(
				text.New("NOTES", props.Text{
					Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1,
				}),
			)),
			row.New(8).Add(col.New(12).Add(
				text.New(invoice.Notes, props.Text{Size: 7.5, Color: colorGray, Top: 1}),
			)),
		)
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

type moneyFormatter func(decimal.Decimal) string

// newMoneyFormatter formats amounts with the currency symbol and grouped
// thousands for the issuer's ISO 4217 code. Unknown codes fall back to a
// plain prefix.
func newMoneyFormatter(code string) moneyFormatter {
	printer := message.NewPrinter(language.English)
	unit, err := currency.ParseISO(code)
	if err != nil {
		return func(d decimal.Decimal) string {
			return fmt.Sprintf("%s %s", code, d.StringFixed(2))
		}
	}
	return func(d decimal.Decimal) string {
		return printer.Sprint(currency.Symbol(unit.Amount(d.InexactFloat64())))
	}
}

func issuerName(issuer *entity.User) string {
	if issuer.BusinessName != "" {
		return issuer.BusinessName
	}
	return fmt.Sprintf("%s %s", issuer.FirstName, issuer.LastName)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
