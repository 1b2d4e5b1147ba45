package expense

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invoiceflow/invoiceflow-api/internal/application/dto"
	"github.com/invoiceflow/invoiceflow-api/internal/domain"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/repository"
)

// ExpenseUseCase implements expense CRUD. Expenses are standalone ledger
// records, scoped to the owning user like every other aggregate.
type ExpenseUseCase struct {
	expenseRepo repository.ExpenseRepository
}

// NewExpenseUseCase builds the expense use case.
func NewExpenseUseCase(expenseRepo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{expenseRepo: expenseRepo}
}

// Create persists an expense. Amount must be positive; the category must be
// one of the accepted values. TaxDeductible defaults to true when absent.
func (uc *ExpenseUseCase) Create(userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	category := in.Category
	if category == "" {
		category = entity.CategoryOther
	}
	if !validCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, category)
	}
	expenseDate, err := parseDate(in.ExpenseDate)
	if err != nil {
		return nil, err
	}
	taxDeductible := true
	if in.TaxDeductible != nil {
		taxDeductible = *in.TaxDeductible
	}
	now := time.Now()
	expense := &entity.Expense{
		ID:            uuid.New().String(),
		UserID:        userID,
		Description:   in.Description,
		Amount:        in.Amount,
		Category:      category,
		ExpenseDate:   expenseDate,
		Vendor:        in.Vendor,
		Notes:         in.Notes,
		TaxDeductible: taxDeductible,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return toResponse(expense), nil
}

// Get returns one of the user's expenses.
func (uc *ExpenseUseCase) Get(userID, expenseID string) (*dto.ExpenseResponse, error) {
	expense, err := uc.expenseRepo.GetByIDAndUser(expenseID, userID)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(expense), nil
}

// List returns the user's expenses, most recent expense date first.
func (uc *ExpenseUseCase) List(userID string, in dto.ListExpensesRequest) ([]dto.ExpenseResponse, error) {
	in.Defaults()
	if in.Category != "" && !validCategory(in.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, in.Category)
	}
	expenses, err := uc.expenseRepo.ListByUser(userID, repository.ExpenseFilter{
		Category: in.Category,
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, *toResponse(e))
	}
	return out, nil
}

// Update applies a partial update.
func (uc *ExpenseUseCase) Update(userID, expenseID string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.expenseRepo.GetByIDAndUser(expenseID, userID)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, fmt.Errorf("%w: description must not be empty", domain.ErrInvalidInput)
		}
		expense.Description = *in.Description
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
		}
		expense.Amount = *in.Amount
	}
	if in.Category != nil {
		if !validCategory(*in.Category) {
			return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, *in.Category)
		}
		expense.Category = *in.Category
	}
	if in.ExpenseDate != nil {
		expenseDate, err := parseDate(*in.ExpenseDate)
		if err != nil {
			return nil, err
		}
		expense.ExpenseDate = expenseDate
	}
	if in.Vendor != nil {
		expense.Vendor = *in.Vendor
	}
	if in.Notes != nil {
		expense.Notes = *in.Notes
	}
	if in.TaxDeductible != nil {
		expense.TaxDeductible = *in.TaxDeductible
	}
	expense.UpdatedAt = time.Now()
	if err := uc.expenseRepo.Update(expense); err != nil {
		return nil, err
	}
	return toResponse(expense), nil
}

// Delete removes an expense.
func (uc *ExpenseUseCase) Delete(userID, expenseID string) error {
	expense, err := uc.expenseRepo.GetByIDAndUser(expenseID, userID)
	if err != nil {
		return err
	}
	if expense == nil {
		return domain.ErrNotFound
	}
	return uc.expenseRepo.Delete(expense.ID)
}

func validCategory(category string) bool {
	for _, c := range entity.ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expense_date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return t, nil
}

func toResponse(e *entity.Expense) *dto.ExpenseResponse {
	if e == nil {
		return nil
	}
	return &dto.ExpenseResponse{
		ID:            e.ID,
		Description:   e.Description,
		Amount:        e.Amount,
		Category:      e.Category,
		ExpenseDate:   e.ExpenseDate.Format(dto.DateLayout),
		Vendor:        e.Vendor,
		Notes:         e.Notes,
		TaxDeductible: e.TaxDeductible,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
