package http

import (
	"fmt"
	"net/http"
	"time"

	"megraja/internal/core"
	"megraja/internal/export"
)

type summaryResponse struct {
	TotalIncome  float64               `json:"totalIncome"`
	TotalExpense float64               `json:"totalExpense"`
	NetSavings   float64               `json:"netSavings"`
	SavingsRate  float64               `json:"savingsRate"`
	Breakdown    []core.CategoryAmount `json:"breakdown"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	transactions := s.store.Transactions()
	breakdown := core.ExpenseBreakdown(transactions)
	if breakdown == nil {
		breakdown = []core.CategoryAmount{}
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		TotalIncome:  core.TotalByType(transactions, core.Income),
		TotalExpense: core.TotalByType(transactions, core.Expense),
		NetSavings:   core.NetSavings(transactions),
		SavingsRate:  core.SavingsRate(transactions),
		Breakdown:    breakdown,
	})
}

// handleExport streams the full ledger as CSV, newest first.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snapshot := core.SortedByDateDescending(s.store.Transactions())
	body := export.EncodeCSV(snapshot)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())))
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, body)
}
