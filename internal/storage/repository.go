package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"megraja/internal/core"

	_ "modernc.org/sqlite"
)

// Named slots for the three persisted ledger records. Each slot holds
// one self-contained JSON document, so single-slot overwrites are
// enough and no cross-slot transaction is needed.
const (
	slotTransactions      = "transactions"
	slotExpenseCategories = "expense_categories"
	slotIncomeCategories  = "income_categories"
)

// SQLiteRepository implements ledger.Persistence on a key-value table
// of named slots.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadTransactions implements ledger.Persistence. An unwritten slot
// yields an empty collection.
func (r *SQLiteRepository) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	raw, ok, err := r.load(ctx, slotTransactions)
	if err != nil || !ok {
		return nil, err
	}
	var transactions []core.Transaction
	if err := json.Unmarshal(raw, &transactions); err != nil {
		return nil, fmt.Errorf("decode transactions slot: %w", err)
	}
	return transactions, nil
}

// SaveTransactions implements ledger.Persistence.
func (r *SQLiteRepository) SaveTransactions(ctx context.Context, transactions []core.Transaction) error {
	if transactions == nil {
		transactions = []core.Transaction{}
	}
	raw, err := json.Marshal(transactions)
	if err != nil {
		return fmt.Errorf("encode transactions slot: %w", err)
	}
	return r.save(ctx, slotTransactions, raw)
}

// LoadCategories implements ledger.Persistence. ok is false when the
// slot has never been written, so the caller can seed defaults.
func (r *SQLiteRepository) LoadCategories(ctx context.Context, t core.TransactionType) ([]string, bool, error) {
	slot, err := categorySlot(t)
	if err != nil {
		return nil, false, err
	}
	raw, ok, err := r.load(ctx, slot)
	if err != nil || !ok {
		return nil, false, err
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, false, fmt.Errorf("decode %s slot: %w", slot, err)
	}
	return names, true, nil
}

// SaveCategories implements ledger.Persistence.
func (r *SQLiteRepository) SaveCategories(ctx context.Context, t core.TransactionType, names []string) error {
	slot, err := categorySlot(t)
	if err != nil {
		return err
	}
	if names == nil {
		names = []string{}
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode %s slot: %w", slot, err)
	}
	return r.save(ctx, slot, raw)
}

func categorySlot(t core.TransactionType) (string, error) {
	switch t {
	case core.Expense:
		return slotExpenseCategories, nil
	case core.Income:
		return slotIncomeCategories, nil
	default:
		return "", fmt.Errorf("no category slot for type %q", t)
	}
}

func (r *SQLiteRepository) load(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM ledger_slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load slot %s: %w", key, err)
	}
	return value, true, nil
}

func (r *SQLiteRepository) save(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ledger_slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("save slot %s: %w", key, err)
	}
	return nil
}
