package ledger

import (
	"context"

	"megraja/internal/core"
)

// Ports for outbound adapters.
type (
	// Persistence stores the ledger's three records under independent
	// named slots. Each slot is self-contained, so single-slot
	// overwrites are enough; no cross-slot transaction is required.
	Persistence interface {
		LoadTransactions(ctx context.Context) ([]core.Transaction, error)
		SaveTransactions(ctx context.Context, transactions []core.Transaction) error

		// LoadCategories reports ok=false when the slot has never been
		// written, which is distinct from an empty registry.
		LoadCategories(ctx context.Context, t core.TransactionType) (names []string, ok bool, err error)
		SaveCategories(ctx context.Context, t core.TransactionType, names []string) error
	}

	// EventPublisher receives a change notification after each
	// committed mutation. Publishing is fire-and-forget: failures are
	// logged by the store and never fail the mutation.
	EventPublisher interface {
		PublishLedgerEvent(ctx context.Context, event Event) error
	}
)

// Event describes one committed ledger mutation.
type Event struct {
	Entity string `json:"entity"` // "transaction" or "category"
	Action string `json:"action"` // "created", "deleted", "added", "removed"
	ID     string `json:"id"`     // transaction id or category name
}

const (
	EntityTransaction = "transaction"
	EntityCategory    = "category"

	ActionCreated = "created"
	ActionDeleted = "deleted"
	ActionAdded   = "added"
	ActionRemoved = "removed"
)
