package dto

// DateLayout is the wire format for calendar dates (issue_date, due_date,
// payment_date, expense_date).
const DateLayout = "2006-01-02"

// PageRequest carries list pagination.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Defaults clamps Limit/Offset to usable values.
func (p *PageRequest) Defaults() {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse is the HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse wraps action confirmations.
type MessageResponse struct {
	Message string `json:"message"`
}
