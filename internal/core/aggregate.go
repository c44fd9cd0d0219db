// Package core holds the ledger domain model and the aggregation
// functions derived from it.
//
// Everything in this file is a pure function of a transaction
// snapshot: no stored state, no side effects. Callers pass the slice
// returned by the ledger store and get a fresh value back.
package core

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// CategoryAmount is one row of an expense breakdown.
type CategoryAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// TotalByType sums the amounts of all transactions of the given type.
// An empty match set yields 0.
func TotalByType(transactions []Transaction, t TransactionType) float64 {
	var sum float64
	for _, tx := range transactions {
		if tx.Type == t {
			sum += tx.Amount
		}
	}
	return sum
}

// ExpenseBreakdown sums expense amounts per category, ordered by
// descending total. Categories without a matching transaction are
// absent; equal totals keep the order categories were first seen in.
func ExpenseBreakdown(transactions []Transaction) []CategoryAmount {
	sums := make(map[string]float64)
	var order []string
	for _, tx := range transactions {
		if tx.Type != Expense {
			continue
		}
		if _, seen := sums[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		sums[tx.Category] += tx.Amount
	}

	out := make([]CategoryAmount, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryAmount{Name: name, Amount: sums[name]})
	}
	// Stable sort keeps first-encounter order for equal totals.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})
	return out
}

// NetSavings is total income minus total expenses.
func NetSavings(transactions []Transaction) float64 {
	return TotalByType(transactions, Income) - TotalByType(transactions, Expense)
}

// SavingsRate returns net savings as a percentage of total income,
// rounded to one decimal place. It is exactly 0 when there is no
// income, regardless of expenses.
func SavingsRate(transactions []Transaction) float64 {
	income := TotalByType(transactions, Income)
	if income == 0 {
		return 0
	}
	rate := NetSavings(transactions) / income * 100
	return math.Round(rate*10) / 10
}

// SortedByDateDescending returns a copy of the snapshot ordered from
// newest to oldest date. The sort is stable: transactions sharing a
// date keep their original relative order.
func SortedByDateDescending(transactions []Transaction) []Transaction {
	out := append([]Transaction(nil), transactions...)
	// Zero-padded ISO dates compare lexicographically in calendar order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// Search filters the snapshot by a case-insensitive substring match
// against category, description, or the decimal rendering of the
// amount. An empty term matches everything; input order is preserved.
func Search(transactions []Transaction, term string) []Transaction {
	if term == "" {
		return append([]Transaction(nil), transactions...)
	}
	needle := strings.ToLower(term)
	var out []Transaction
	for _, tx := range transactions {
		if strings.Contains(strings.ToLower(tx.Category), needle) ||
			strings.Contains(strings.ToLower(tx.Description), needle) ||
			strings.Contains(FormatAmount(tx.Amount), needle) {
			out = append(out, tx)
		}
	}
	return out
}

// FormatAmount renders an amount in its shortest decimal form, e.g.
// 1000 -> "1000" and 50.5 -> "50.5".
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
