package core

import "testing"

func tx(typ TransactionType, amount float64, category, date string) Transaction {
	return Transaction{Type: typ, Amount: amount, Category: category, Date: date}
}

func TestTotalsAndSavings(t *testing.T) {
	snapshot := []Transaction{
		tx(Income, 1000, "Salary", "2024-01-01"),
		tx(Expense, 400, "Housing", "2024-01-02"),
	}

	if got := TotalByType(snapshot, Income); got != 1000 {
		t.Fatalf("income total: expected 1000, got %v", got)
	}
	if got := TotalByType(snapshot, Expense); got != 400 {
		t.Fatalf("expense total: expected 400, got %v", got)
	}
	if got := NetSavings(snapshot); got != 600 {
		t.Fatalf("net savings: expected 600, got %v", got)
	}
	if got := SavingsRate(snapshot); got != 60.0 {
		t.Fatalf("savings rate: expected 60.0, got %v", got)
	}
}

func TestTotalByTypeLinear(t *testing.T) {
	a := []Transaction{tx(Expense, 10, "Food", "2024-01-01"), tx(Income, 5, "Gifts", "2024-01-01")}
	b := []Transaction{tx(Expense, 2.5, "Food", "2024-01-02")}
	both := append(append([]Transaction(nil), a...), b...)

	for _, typ := range []TransactionType{Income, Expense} {
		if TotalByType(both, typ) != TotalByType(a, typ)+TotalByType(b, typ) {
			t.Fatalf("totals are not additive for %s", typ)
		}
	}
	if TotalByType(nil, Income) != 0 {
		t.Fatalf("empty snapshot should total 0")
	}
}

func TestSavingsRateZeroIncome(t *testing.T) {
	snapshot := []Transaction{tx(Expense, 42, "Food", "2024-01-01")}
	if got := SavingsRate(snapshot); got != 0 {
		t.Fatalf("expected rate 0 with no income, got %v", got)
	}
	if got := SavingsRate(nil); got != 0 {
		t.Fatalf("expected rate 0 for empty snapshot, got %v", got)
	}
}

func TestSavingsRateRounding(t *testing.T) {
	snapshot := []Transaction{
		tx(Income, 3, "Salary", "2024-01-01"),
		tx(Expense, 1, "Food", "2024-01-02"),
	}
	// 2/3*100 = 66.666... -> 66.7
	if got := SavingsRate(snapshot); got != 66.7 {
		t.Fatalf("expected 66.7, got %v", got)
	}
}

func TestExpenseBreakdown(t *testing.T) {
	snapshot := []Transaction{
		tx(Expense, 50, "Food", "2024-01-01"),
		tx(Expense, 30, "Food", "2024-01-02"),
		tx(Expense, 20, "Transport", "2024-01-03"),
		tx(Income, 999, "Salary", "2024-01-04"), // must not appear
	}
	got := ExpenseBreakdown(snapshot)
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	if got[0].Name != "Food" || got[0].Amount != 80 {
		t.Fatalf("expected Food=80 first, got %+v", got[0])
	}
	if got[1].Name != "Transport" || got[1].Amount != 20 {
		t.Fatalf("expected Transport=20 second, got %+v", got[1])
	}
}

func TestExpenseBreakdownTiesKeepEncounterOrder(t *testing.T) {
	snapshot := []Transaction{
		tx(Expense, 10, "B", "2024-01-01"),
		tx(Expense, 10, "A", "2024-01-02"),
	}
	got := ExpenseBreakdown(snapshot)
	if got[0].Name != "B" || got[1].Name != "A" {
		t.Fatalf("ties must keep first-encounter order, got %+v", got)
	}
}

func TestExpenseBreakdownEmpty(t *testing.T) {
	if got := ExpenseBreakdown(nil); len(got) != 0 {
		t.Fatalf("expected empty breakdown, got %+v", got)
	}
}

func TestSortedByDateDescending(t *testing.T) {
	snapshot := []Transaction{
		{ID: "1", Type: Expense, Amount: 1, Category: "a", Date: "2024-01-02"},
		{ID: "2", Type: Expense, Amount: 2, Category: "b", Date: "2024-03-01"},
		{ID: "3", Type: Expense, Amount: 3, Category: "c", Date: "2024-01-02"},
	}
	got := SortedByDateDescending(snapshot)
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	if ids[0] != "2" || ids[1] != "1" || ids[2] != "3" {
		t.Fatalf("expected order [2 1 3], got %v", ids)
	}
	// Idempotent: sorting the sorted snapshot changes nothing.
	again := SortedByDateDescending(got)
	for i := range again {
		if again[i].ID != got[i].ID {
			t.Fatalf("sort is not idempotent at %d", i)
		}
	}
	// Input must be untouched.
	if snapshot[0].ID != "1" {
		t.Fatalf("input snapshot was mutated")
	}
}

func TestSearch(t *testing.T) {
	snapshot := []Transaction{
		{ID: "1", Type: Expense, Amount: 50.5, Category: "Food", Date: "2024-01-01", Description: "Lunch out"},
		{ID: "2", Type: Income, Amount: 1000, Category: "Salary", Date: "2024-01-02", Description: ""},
		{ID: "3", Type: Expense, Amount: 20, Category: "Transport", Date: "2024-01-03", Description: "bus ticket"},
	}

	cases := []struct {
		term string
		ids  []string
	}{
		{"", []string{"1", "2", "3"}},
		{"food", []string{"1"}},
		{"LUNCH", []string{"1"}},
		{"1000", []string{"2"}},
		{"50.5", []string{"1"}},
		{"t", []string{"1", "3"}}, // category and description matches, input order kept
		{"no-such-thing", nil},
	}
	for _, tc := range cases {
		got := Search(snapshot, tc.term)
		if len(got) != len(tc.ids) {
			t.Fatalf("term %q: expected %d results, got %d", tc.term, len(tc.ids), len(got))
		}
		for i, id := range tc.ids {
			if got[i].ID != id {
				t.Fatalf("term %q: expected id %s at %d, got %s", tc.term, id, i, got[i].ID)
			}
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in  float64
		out string
	}{
		{1000, "1000"},
		{50.5, "50.5"},
		{0.01, "0.01"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.out {
			t.Fatalf("%v: expected %q, got %q", tc.in, tc.out, got)
		}
	}
}
