package entity

import "time"

// Client represents a user's customer, the party an invoice is billed to.
// (user_id, email) is unique.
type Client struct {
	ID          string
	UserID      string
	Name        string
	Email       string
	CompanyName string
	Address     string
	Phone       string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
