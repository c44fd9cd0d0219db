package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// Transaction is a single recorded income or expense entry. It is
	// immutable once created; deletion is the only allowed change.
	// JSON tags match both the persisted records and the wire shape.
	Transaction struct {
		ID          string          `json:"id"`
		Type        TransactionType `json:"type"`
		Amount      float64         `json:"amount"`
		Category    string          `json:"category"`
		Date        string          `json:"date"` // YYYY-MM-DD, no time component
		Description string          `json:"description"`
	}

	// Draft carries the user-supplied fields of a transaction before an
	// id has been assigned.
	Draft struct {
		Type        TransactionType `json:"type"`
		Amount      float64         `json:"amount"`
		Category    string          `json:"category"`
		Date        string          `json:"date"`
		Description string          `json:"description"`
	}
)

var (
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidDate   = errors.New("invalid date")
)

// Default category sets seeded into a fresh profile.
var (
	DefaultExpenseCategories = []string{
		"Housing",
		"Food",
		"Transportation",
		"Utilities",
		"Entertainment",
		"Healthcare",
		"Shopping",
		"Personal",
		"Education",
		"Other",
	}

	DefaultIncomeCategories = []string{
		"Salary",
		"Freelance",
		"Investments",
		"Gifts",
		"Other",
	}
)

const DateLayout = "2006-01-02"

func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// String implements fmt.Stringer
func (t TransactionType) String() string {
	return string(t)
}

// Validate reports whether the draft can become a transaction: known
// type, positive amount, a category, and an ISO date. The ledger store
// performs no validation of its own, so entry points must run this
// before handing a draft over.
func (d Draft) Validate() error {
	if !d.Type.IsValid() {
		return ErrInvalidType
	}
	if d.Amount <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(d.Category) == "" {
		return ErrEmptyCategory
	}
	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// Transaction builds the immutable record for this draft under the
// given id.
func (d Draft) Transaction(id string) Transaction {
	return Transaction{
		ID:          id,
		Type:        d.Type,
		Amount:      d.Amount,
		Category:    d.Category,
		Date:        d.Date,
		Description: d.Description,
	}
}
