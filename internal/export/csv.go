// Package export serializes transaction snapshots for download.
package export

import (
	"strings"
	"time"

	"megraja/internal/core"
)

const header = "Date,Type,Category,Amount,Description"

// EncodeCSV renders the snapshot as a CSV document in the order given;
// callers sort beforehand if order matters. Category is always quoted
// (with internal quotes doubled), description is quoted only when
// non-empty, and the remaining fields are bare literals. Rows are
// joined with a single newline and decode back to the exact original
// values under standard CSV parsing rules.
func EncodeCSV(transactions []core.Transaction) string {
	rows := make([]string, 0, len(transactions)+1)
	rows = append(rows, header)
	for _, tx := range transactions {
		desc := ""
		if tx.Description != "" {
			desc = quote(tx.Description)
		}
		fields := []string{
			tx.Date,
			string(tx.Type),
			quote(tx.Category),
			core.FormatAmount(tx.Amount),
			desc,
		}
		rows = append(rows, strings.Join(fields, ","))
	}
	return strings.Join(rows, "\n")
}

// Filename returns the download name for an export taken at t, e.g.
// megraja_finance_export_2024-06-01.csv.
func Filename(t time.Time) string {
	return "megraja_finance_export_" + t.Format(core.DateLayout) + ".csv"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
