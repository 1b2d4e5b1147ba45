package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense categories.
const (
	CategoryOfficeSupplies       = "OFFICE_SUPPLIES"
	CategoryTravel               = "TRAVEL"
	CategoryMeals                = "MEALS"
	CategorySoftware             = "SOFTWARE"
	CategoryEquipment            = "EQUIPMENT"
	CategoryMarketing            = "MARKETING"
	CategoryProfessionalServices = "PROFESSIONAL_SERVICES"
	CategoryUtilities            = "UTILITIES"
	CategoryRent                 = "RENT"
	CategoryInsurance            = "INSURANCE"
	CategoryTaxes                = "TAXES"
	CategoryOther                = "OTHER"
)

// ExpenseCategories lists the accepted values for Expense.Category.
var ExpenseCategories = []string{
	CategoryOfficeSupplies, CategoryTravel, CategoryMeals, CategorySoftware,
	CategoryEquipment, CategoryMarketing, CategoryProfessionalServices,
	CategoryUtilities, CategoryRent, CategoryInsurance, CategoryTaxes,
	CategoryOther,
}

// Expense is a standalone cost record for the owner's ledger. It is not
// linked to any invoice.
type Expense struct {
	ID            string
	UserID        string
	Description   string
	Amount        decimal.Decimal // > 0
	Category      string
	ExpenseDate   time.Time
	Vendor        string
	Notes         string
	TaxDeductible bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
