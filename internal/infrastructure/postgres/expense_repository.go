package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invoiceflow/invoiceflow-api/internal/domain/entity"
	"github.com/invoiceflow/invoiceflow-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implements ExpenseRepository (usable with pool or tx).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository builds the adapter. Pass a pool or a tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseColumns = `id, user_id, description, amount, category, expense_date,
		vendor, notes, tax_deductible, created_at, updated_at`

// Create persists an expense.
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.UserID, expense.Description, expense.Amount,
		expense.Category, expense.ExpenseDate, expense.Vendor, expense.Notes,
		expense.TaxDeductible, expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByIDAndUser fetches an expense scoped by owner.
func (r *ExpenseRepo) GetByIDAndUser(id, userID string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1 AND user_id = $2`
	var e entity.Expense
	err := r.q.QueryRow(context.Background(), query, id, userID).Scan(
		&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Category, &e.ExpenseDate,
		&e.Vendor, &e.Notes, &e.TaxDeductible, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

// ListByUser lists expenses, most recent expense date first, with an
// optional category filter.
func (r *ExpenseRepo) ListByUser(userID string, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1`
	args := []any{userID}
	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY expense_date DESC, created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Category, &e.ExpenseDate,
			&e.Vendor, &e.Notes, &e.TaxDeductible, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Update persists expense changes.
func (r *ExpenseRepo) Update(expense *entity.Expense) error {
	query := `
		UPDATE expenses
		SET description = $2, amount = $3, category = $4, expense_date = $5,
		    vendor = $6, notes = $7, tax_deductible = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.Description, expense.Amount, expense.Category,
		expense.ExpenseDate, expense.Vendor, expense.Notes,
		expense.TaxDeductible, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

// Delete removes an expense by id.
func (r *ExpenseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}
