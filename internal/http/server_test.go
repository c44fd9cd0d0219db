package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"megraja/internal/advisor"
	"megraja/internal/core"
	"megraja/internal/ledger"
)

type fakePersistence struct {
	transactions []core.Transaction
	categories   map[core.TransactionType][]string
}

func newFakePersistence() *fakePersistence {
	return &fakePersistence{categories: make(map[core.TransactionType][]string)}
}

func (f *fakePersistence) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	return f.transactions, nil
}

func (f *fakePersistence) SaveTransactions(ctx context.Context, transactions []core.Transaction) error {
	f.transactions = append([]core.Transaction(nil), transactions...)
	return nil
}

func (f *fakePersistence) LoadCategories(ctx context.Context, t core.TransactionType) ([]string, bool, error) {
	names, ok := f.categories[t]
	return names, ok, nil
}

func (f *fakePersistence) SaveCategories(ctx context.Context, t core.TransactionType, names []string) error {
	f.categories[t] = append([]string(nil), names...)
	return nil
}

type fakeAdvisor struct {
	advice  advisor.Advice
	err     error
	summary advisor.Summary
}

func (f *fakeAdvisor) Generate(ctx context.Context, s advisor.Summary) (advisor.Advice, error) {
	f.summary = s
	if f.err != nil {
		return advisor.Advice{}, f.err
	}
	return f.advice, nil
}

func newTestServer(t *testing.T, adv advisor.Advisor) *Server {
	t.Helper()
	store, err := ledger.Open(context.Background(), newFakePersistence(), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return NewServer(":0", store, adv)
}

func doRequest(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndListTransactions(t *testing.T) {
	srv := newTestServer(t, &fakeAdvisor{})

	rec := doRequest(srv, http.MethodPost, "/api/transactions",
		`{"type":"expense","amount":42.5,"category":"Food","date":"2024-03-01","description":"groceries"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body)
	}

	var created core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created transaction has no id")
	}
	if created.Amount != 42.5 || created.Category != "Food" {
		t.Fatalf("created = %+v", created)
	}

	rec = doRequest(srv, http.MethodGet, "/api/transactions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listed []core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("listed = %+v", listed)
	}
}

func TestListTransactionsSortedAndFiltered(t *testing.T) {
	srv := newTestServer(t, &fakeAdvisor{})

	bodies := []string{
		`{"type":"expense","amount":10,"category":"Food","date":"2024-01-05"}`,
		`{"type":"income","amount":900,"category":"Salary","date":"2024-02-01"}`,
		`{"type":"expense","amount":20,"category":"Transport","date":"2024-01-20"}`,
	}
	for _, b := range bodies {
		if rec := doRequest(srv, http.MethodPost, "/api/transactions", b); rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d (body %s)", rec.Code, rec.Body)
		}
	}

	rec := doRequest(srv, http.MethodGet, "/api/transactions", "")
	var listed []core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	got := []string{listed[0].Date, listed[1].Date, listed[2].Date}
	want := []string{"2024-02-01", "2024-01-20", "2024-01-05"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dates = %v, want %v", got, want)
		}
	}

	rec = doRequest(srv, http.MethodGet, "/api/transactions?q=trans", "")
	listed = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode filtered list: %v", err)
	}
	if len(listed) != 1 || listed[0].Category != "Transport" {
		t.Fatalf("filtered = %+v", listed)
	}
}

func TestListTransactionsEmptyIsArray(t *testing.T) {
	srv := newTestServer(t, &fakeAdvisor{})

	rec := doRequest(srv, http.MethodGet, "/api/transactions", "")
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("empty list body = %q, want []", body)
	}
}

func TestCreateTransactionInvalid(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad type", `{"type":"transfer","amount":10,"category":"Food","date":"2024-01-01"}`},
		{"zero amount", `{"type":"expense","amount":0,"category":"Food","date":"2024-01-01"}`},
		{"negative amount", `{"type":"expense","amount":-5,"category":"Food","date":"2024-01-01"}`},
		{"blank category", `{"type":"expense","amount":10,"category":"  ","date":"2024-01-01"}`},
		{"bad date", `{"type":"expense","amount":10,"category":"Food","date":"01/02/2024"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, &fakeAdvisor{})
			rec := doRequest(srv, http.MethodPost, "/api/transactions", tc.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if resp["error"] == "" {
				t.Fatal("error body has no message")
			}
		})
	}
}

func TestDeleteTransaction(t *testing.T) {
	srv := newTestServer(t, &fakeAdvisor{})

	rec := doRequest(srv, http.MethodPost, "/api/transactions",
		`{"type":"expense","amount":10,"category":"Food","date":"2024-01-01"}`)
	var created core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	rec = doRequest(srv, http.MethodDelete, "/api/transactions/"+created.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	// Deleting an unknown id still succeeds.
	rec = doRequest(srv, http.MethodDelete, "/api/transactions/nope", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete unknown status = %d", rec.Code)
	}

	rec = doRequest(srv, http.MethodGet, "/api/transactions", "")
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("list after delete = %q", body)
	}
}

func TestCategoryEndpoints(t *testing.T) {
	srv := newTestServer(t, &fakeAdvisor{})

	rec := doRequest(srv, http.MethodGet, "/api/categories?type=expense", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listed categoryListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Categories) != len(core.DefaultExpenseCategories) {
		t.Fatalf("default categories = %v", listed.Categories)
	}

	rec = doRequest(srv, http.MethodPost, "/api/categories", `{"type":"expense","name":"  Pets  "}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d (body %s)", rec.Code, rec.Body)
	}
	var added categoryRequest
	if err := json.Unmarshal(rec.Body.Bytes(), &added); err != nil {
		t.Fatalf("decode added: %v", err)
	}
	if added.Name != "Pets" {
		t.Fatalf("added name = %q, want trimmed", added.Name)
	}

	rec = doRequest(srv, http.MethodPost, "/api/categories", `{"type":"expense","name":"Pets"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d", rec.Code)
	}

	rec = doRequest(srv, http.MethodPost, "/api/categories", `{"type":"expense","name":"   "}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("blank name status = %d", rec.Code)
	}

	rec = doRequest(srv, http.MethodPost, "/api/categories", `{"type":"transfer","name":"X"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad type status = %d", rec.Code)
	}

	rec = doRequest(srv, http.MethodDelete, "/api/categories?type=expense&name=Pets", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("remove status = %d", rec.Code)
	}
	rec = doRequest(srv, http.MethodDelete, "/api/categories?type=expense&name=Pets", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("remove absent status = %d", rec.Code)
	}
}

func TestSummary(t *testing.T) {
	srv := newTestServer(t, &fakeAdvisor{})

	bodies := []string{
		`{"type":"income","amount":1000,"category":"Salary","date":"2024-01-01"}`,
		`{"type":"expense","amount":300,"category":"Rent","date":"2024-01-02"}`,
		`{"type":"expense","amount":100,"category":"Food","date":"2024-01-03"}`,
	}
	for _, b := range bodies {
		if rec := doRequest(srv, http.MethodPost, "/api/transactions", b); rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d", rec.Code)
		}
	}

	rec := doRequest(srv, http.MethodGet, "/api/summary", "")
	var got summaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if got.TotalIncome != 1000 || got.TotalExpense != 400 || got.NetSavings != 600 {
		t.Fatalf("summary = %+v", got)
	}
	if got.SavingsRate != 60 {
		t.Fatalf("savings rate = %v", got.SavingsRate)
	}
	if len(got.Breakdown) != 2 || got.Breakdown[0].Name != "Rent" || got.Breakdown[1].Name != "Food" {
		t.Fatalf("breakdown = %+v", got.Breakdown)
	}
}

func TestExport(t *testing.T) {
	srv := newTestServer(t, &fakeAdvisor{})

	if rec := doRequest(srv, http.MethodPost, "/api/transactions",
		`{"type":"expense","amount":12.5,"category":"Food","date":"2024-05-01","description":"lunch"}`); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	rec := doRequest(srv, http.MethodGet, "/api/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "megraja_finance_export_") || !strings.Contains(cd, ".csv") {
		t.Fatalf("content disposition = %q", cd)
	}
	lines := strings.Split(rec.Body.String(), "\n")
	if lines[0] != "Date,Type,Category,Amount,Description" {
		t.Fatalf("header line = %q", lines[0])
	}
	if lines[1] != `2024-05-01,expense,"Food",12.5,"lunch"` {
		t.Fatalf("data line = %q", lines[1])
	}
}

func TestAnalyze(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeAdvisor{advice: advisor.Advice{
			Analysis: "You spend a lot on food.",
			Tips:     []string{"Cook at home", "Track subscriptions"},
		}}
		srv := newTestServer(t, fake)

		rec := doRequest(srv, http.MethodPost, "/api/analyze",
			`{"transactions":[
				{"id":"1","type":"income","amount":1000,"category":"Salary","date":"2024-01-01"},
				{"id":"2","type":"expense","amount":400,"category":"Food","date":"2024-01-02"}
			]}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d (body %s)", rec.Code, rec.Body)
		}

		var got advisor.Advice
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode advice: %v", err)
		}
		if got.Analysis != fake.advice.Analysis || len(got.Tips) != 2 {
			t.Fatalf("advice = %+v", got)
		}

		// Totals are computed server-side from the submitted transactions.
		if fake.summary.TotalIncome != 1000 || fake.summary.TotalExpense != 400 {
			t.Fatalf("summary seen by advisor = %+v", fake.summary)
		}
	})

	t.Run("missing transactions", func(t *testing.T) {
		srv := newTestServer(t, &fakeAdvisor{})
		for _, body := range []string{`{}`, `{"transactions":null}`, `{"transactions":"nope"}`, `not json`} {
			rec := doRequest(srv, http.MethodPost, "/api/analyze", body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("body %q: status = %d, want %d", body, rec.Code, http.StatusBadRequest)
			}
		}
	})

	t.Run("advisor not configured", func(t *testing.T) {
		srv := newTestServer(t, &fakeAdvisor{err: advisor.ErrNotConfigured})
		rec := doRequest(srv, http.MethodPost, "/api/analyze", `{"transactions":[]}`)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Server configuration error") {
			t.Fatalf("body = %s", rec.Body)
		}
	})

	t.Run("advisor failure", func(t *testing.T) {
		srv := newTestServer(t, &fakeAdvisor{err: advisor.ErrRequestFailed})
		rec := doRequest(srv, http.MethodPost, "/api/analyze", `{"transactions":[]}`)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Failed to generate advice") {
			t.Fatalf("body = %s", rec.Body)
		}
	})
}
