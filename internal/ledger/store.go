// Package ledger owns the canonical transaction collection and the
// per-type category registries for one profile.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"megraja/internal/core"
)

// Store is the ledger service object. All state lives in memory and is
// flushed to the persistence port synchronously after every committed
// mutation, so a restart right after a mutation does not lose it.
//
// A single profile has no concurrent writers by contract, but the HTTP
// server invokes the store from multiple goroutines, hence the mutex.
type Store struct {
	mu          sync.Mutex
	persistence Persistence
	events      EventPublisher

	transactions []core.Transaction
	registries   map[core.TransactionType]*Registry
}

// Open loads the profile's records from the persistence port. Registry
// slots that have never been written are seeded with the default
// category sets and persisted immediately.
func Open(ctx context.Context, p Persistence, events EventPublisher) (*Store, error) {
	transactions, err := p.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	s := &Store{
		persistence:  p,
		events:       events,
		transactions: transactions,
		registries:   make(map[core.TransactionType]*Registry, 2),
	}

	defaults := map[core.TransactionType][]string{
		core.Expense: core.DefaultExpenseCategories,
		core.Income:  core.DefaultIncomeCategories,
	}
	for typ, seed := range defaults {
		names, ok, err := p.LoadCategories(ctx, typ)
		if err != nil {
			return nil, fmt.Errorf("load %s categories: %w", typ, err)
		}
		if !ok {
			names = seed
			if err := p.SaveCategories(ctx, typ, names); err != nil {
				return nil, fmt.Errorf("seed %s categories: %w", typ, err)
			}
			slog.InfoContext(ctx, "Seeded default categories", "type", typ, "count", len(names))
		}
		s.registries[typ] = NewRegistry(names)
	}

	slog.InfoContext(ctx, "Ledger loaded",
		"transactions", len(s.transactions),
		"expense_categories", len(s.registries[core.Expense].names),
		"income_categories", len(s.registries[core.Income].names))
	return s, nil
}

// AddTransaction assigns a fresh unique id to the draft and appends it
// to the collection. The store performs no draft validation; entry
// points run core.Draft.Validate before calling here.
func (s *Store) AddTransaction(ctx context.Context, draft core.Draft) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := draft.Transaction(uuid.NewString())
	s.transactions = append(s.transactions, tx)
	if err := s.persistence.SaveTransactions(ctx, s.transactions); err != nil {
		s.transactions = s.transactions[:len(s.transactions)-1]
		return core.Transaction{}, fmt.Errorf("save transactions: %w", err)
	}

	s.publish(ctx, Event{Entity: EntityTransaction, Action: ActionCreated, ID: tx.ID})
	return tx, nil
}

// DeleteTransaction removes the transaction with the given id. A
// missing id is a no-op, not an error, and does not touch storage.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, tx := range s.transactions {
		if tx.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	removed := s.transactions[idx]
	s.transactions = append(s.transactions[:idx], s.transactions[idx+1:]...)
	if err := s.persistence.SaveTransactions(ctx, s.transactions); err != nil {
		s.transactions = append(s.transactions[:idx], append([]core.Transaction{removed}, s.transactions[idx:]...)...)
		return fmt.Errorf("save transactions: %w", err)
	}

	s.publish(ctx, Event{Entity: EntityTransaction, Action: ActionDeleted, ID: id})
	return nil
}

// Transactions returns a snapshot of the collection in insertion
// order. Mutating the returned slice does not affect the store.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...)
}

// AddCategory adds a trimmed name to the registry for the given type.
// An empty name after trimming is rejected silently; a duplicate
// reports ErrDuplicateCategory.
func (s *Store) AddCategory(ctx context.Context, typ core.TransactionType, name string) error {
	if !typ.IsValid() {
		return core.ErrInvalidType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reg := s.registries[typ]
	prev := reg.Names()
	trimmed, err := reg.Add(name)
	if err == ErrEmptyName {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.persistence.SaveCategories(ctx, typ, reg.names); err != nil {
		reg.names = prev
		return fmt.Errorf("save %s categories: %w", typ, err)
	}

	s.publish(ctx, Event{Entity: EntityCategory, Action: ActionAdded, ID: trimmed})
	return nil
}

// RemoveCategory deletes the name from the registry for the given
// type; a missing name is a no-op. Transactions referencing the name
// keep it as plain text: the removal never cascades.
func (s *Store) RemoveCategory(ctx context.Context, typ core.TransactionType, name string) error {
	if !typ.IsValid() {
		return core.ErrInvalidType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reg := s.registries[typ]
	prev := reg.Names()
	if !reg.Remove(name) {
		return nil
	}
	if err := s.persistence.SaveCategories(ctx, typ, reg.names); err != nil {
		reg.names = prev
		return fmt.Errorf("save %s categories: %w", typ, err)
	}

	s.publish(ctx, Event{Entity: EntityCategory, Action: ActionRemoved, ID: name})
	return nil
}

// Categories returns the registry names for the given type in display
// order, or nil for an unknown type.
func (s *Store) Categories(typ core.TransactionType) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, ok := s.registries[typ]
	if !ok {
		return nil
	}
	return reg.Names()
}

func (s *Store) publish(ctx context.Context, event Event) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLedgerEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"entity", event.Entity, "action", event.Action, "id", event.ID, "error", err)
	}
}
