package repository

import "github.com/invoiceflow/invoiceflow-api/internal/domain/entity"

// ExpenseFilter narrows expense listings. Zero values mean "no filter".
type ExpenseFilter struct {
	Category string
	Limit    int
	Offset   int
}

// ExpenseRepository is the persistence port for Expense.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByIDAndUser(id, userID string) (*entity.Expense, error)
	ListByUser(userID string, f ExpenseFilter) ([]*entity.Expense, error)
	Update(expense *entity.Expense) error
	Delete(id string) error
}
