// Package advisor builds the numeric summary sent to the external
// advice generator and validates what comes back.
package advisor

import (
	"encoding/json"

	"megraja/internal/core"
)

// Summary is the fixed-shape payload that crosses the advisor
// boundary. Sending aggregates instead of raw transactions keeps the
// external call independent of ledger schema growth and keeps
// description text out of the request.
type Summary struct {
	TotalIncome       float64            `json:"totalIncome"`
	TotalExpense      float64            `json:"totalExpense"`
	Savings           float64            `json:"savings"`
	ExpensesBreakdown map[string]float64 `json:"expensesBreakdown"`
	TransactionCount  int                `json:"transactionCount"`
}

// BuildSummary reduces a transaction snapshot to the advisor payload.
// The breakdown map is always non-nil so it serializes as {} when
// empty.
func BuildSummary(transactions []core.Transaction) Summary {
	breakdown := make(map[string]float64)
	for _, row := range core.ExpenseBreakdown(transactions) {
		breakdown[row.Name] = row.Amount
	}

	income := core.TotalByType(transactions, core.Income)
	expense := core.TotalByType(transactions, core.Expense)
	return Summary{
		TotalIncome:       income,
		TotalExpense:      expense,
		Savings:           income - expense,
		ExpensesBreakdown: breakdown,
		TransactionCount:  len(transactions),
	}
}

// Prompt renders the instruction sent to the model, with the summary
// embedded as JSON.
func Prompt(s Summary) string {
	context, _ := json.Marshal(s)
	return "You are a financial advisor. Analyze the following monthly financial summary: " +
		string(context) +
		". Provide a brief analysis of the financial health (tone should be encouraging but realistic) " +
		"and 3 specific, actionable tips to improve savings based on the spending categories."
}
