package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/ledger/internal/config"
	"github.com/hance08/ledger/internal/logging"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/service"
	"github.com/hance08/ledger/internal/store"
)

type testServer struct {
	t      *testing.T
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo, err := store.NewStore(filepath.Join(t.TempDir(), "ledger.db"), os.DirFS("../.."))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	cfg := config.NewDefault()
	logger := logging.Discard()
	h := NewHandler(service.NewService(repo, cfg, logger), logger)
	return &testServer{t: t, router: NewRouter(h, cfg.Server)}
}

// do sends a request as user alice and decodes the JSON response into out.
func (s *testServer) do(method, path string, body any, out any) int {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerUserID, "alice")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func (s *testServer) setup() (BookDTO, AccountDTO, AccountDTO, CategoryDTO) {
	s.t.Helper()

	var book BookDTO
	require.Equal(s.t, http.StatusCreated, s.do("POST", "/api/books", CreateBookRequest{Name: "Household", Currency: "usd"}, &book))

	var checking, savings AccountDTO
	require.Equal(s.t, http.StatusCreated, s.do("POST", s.bookPath(book, "/accounts"),
		CreateAccountRequest{Name: "Checking", Kind: "ASSET", OpeningBalance: "1000.00"}, &checking))
	require.Equal(s.t, http.StatusCreated, s.do("POST", s.bookPath(book, "/accounts"),
		CreateAccountRequest{Name: "Savings", Kind: "ASSET"}, &savings))

	var food CategoryDTO
	require.Equal(s.t, http.StatusCreated, s.do("POST", s.bookPath(book, "/categories"),
		CreateCategoryRequest{Name: "Food", Kind: "EXPENSE"}, &food))

	return book, checking, savings, food
}

func (s *testServer) bookPath(book BookDTO, suffix string) string {
	return "/api/books/" + book.ID + suffix
}

func (s *testServer) balance(book BookDTO, id int64) string {
	s.t.Helper()
	var acc AccountDTO
	require.Equal(s.t, http.StatusOK, s.do("GET", s.bookPath(book, fmt.Sprintf("/accounts/%d", id)), nil, &acc))
	return acc.Balance
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	var body map[string]string
	assert.Equal(t, http.StatusOK, s.do("GET", "/healthz", nil, &body))
	assert.Equal(t, "ok", body["status"])
}

func TestBooksAndAccounts(t *testing.T) {
	s := newTestServer(t)
	book, checking, _, _ := s.setup()

	assert.Equal(t, "USD", book.Currency)
	assert.Equal(t, "1000.00", checking.Balance)

	var books []BookDTO
	require.Equal(t, http.StatusOK, s.do("GET", "/api/books", nil, &books))
	assert.Len(t, books, 1)

	var accounts []AccountDTO
	require.Equal(t, http.StatusOK, s.do("GET", s.bookPath(book, "/accounts"), nil, &accounts))
	assert.Len(t, accounts, 3)

	var errResp ErrorResponse
	assert.Equal(t, http.StatusConflict, s.do("POST", s.bookPath(book, "/accounts"),
		CreateAccountRequest{Name: "Checking", Kind: "ASSET"}, &errResp))
	assert.Equal(t, http.StatusConflict, s.do("DELETE", s.bookPath(book, fmt.Sprintf("/accounts/%d", checking.ID)), nil, &errResp))
	assert.Equal(t, http.StatusNotFound, s.do("GET", "/api/books/nope", nil, &errResp))
	assert.Equal(t, http.StatusBadRequest, s.do("GET", s.bookPath(book, "/accounts/abc"), nil, &errResp))
}

func TestArchiveAccount(t *testing.T) {
	s := newTestServer(t)
	book, _, savings, _ := s.setup()

	var acc AccountDTO
	require.Equal(t, http.StatusOK, s.do("POST", s.bookPath(book, fmt.Sprintf("/accounts/%d/archive", savings.ID)), nil, &acc))
	assert.True(t, acc.Archived)

	var accounts []AccountDTO
	require.Equal(t, http.StatusOK, s.do("GET", s.bookPath(book, "/accounts"), nil, &accounts))
	assert.Len(t, accounts, 2)
	require.Equal(t, http.StatusOK, s.do("GET", s.bookPath(book, "/accounts?archived=true"), nil, &accounts))
	assert.Len(t, accounts, 3)

	unarchive := false
	require.Equal(t, http.StatusOK, s.do("POST", s.bookPath(book, fmt.Sprintf("/accounts/%d/archive", savings.ID)),
		ArchiveAccountRequest{Archived: &unarchive}, &acc))
	assert.False(t, acc.Archived)
}

func TestTransactionLifecycle(t *testing.T) {
	s := newTestServer(t)
	book, checking, savings, food := s.setup()

	var spent TransactionDTO
	require.Equal(t, http.StatusCreated, s.do("POST", s.bookPath(book, "/transactions"), IntentRequest{
		Type:            "expense",
		Amount:          "500.00",
		SourceAccountID: checking.ID,
		CategoryID:      &food.ID,
		Date:            "2026-03-14",
	}, &spent))
	assert.Equal(t, "500.00", spent.Amount)
	assert.Equal(t, "alice", spent.CreatedBy)
	assert.Len(t, spent.Splits, 2)
	assert.Equal(t, "500.00", s.balance(book, checking.ID))

	var moved TransactionDTO
	require.Equal(t, http.StatusCreated, s.do("POST", s.bookPath(book, "/transactions"), IntentRequest{
		Type:                 "TRANSFER",
		Amount:               "300",
		SourceAccountID:      checking.ID,
		DestinationAccountID: &savings.ID,
	}, &moved))
	assert.Equal(t, "200.00", s.balance(book, checking.ID))
	assert.Equal(t, "300.00", s.balance(book, savings.ID))

	path := s.bookPath(book, fmt.Sprintf("/transactions/%d", spent.ID))

	var updated TransactionDTO
	require.Equal(t, http.StatusOK, s.do("PUT", path, IntentRequest{
		Type:            "EXPENSE",
		Amount:          "800",
		SourceAccountID: checking.ID,
		CategoryID:      &food.ID,
	}, &updated))
	assert.Equal(t, "-100.00", s.balance(book, checking.ID))

	amount := "50"
	var patched TransactionDTO
	require.Equal(t, http.StatusOK, s.do("PATCH", path, PatchRequest{Amount: &amount}, &patched))
	assert.Equal(t, "50.00", patched.Amount)
	require.NotNil(t, patched.CategoryID)
	assert.Equal(t, "650.00", s.balance(book, checking.ID))

	require.Equal(t, http.StatusNoContent, s.do("DELETE", s.bookPath(book, fmt.Sprintf("/transactions/%d", moved.ID)), nil, nil))
	assert.Equal(t, "950.00", s.balance(book, checking.ID))
	assert.Equal(t, "0.00", s.balance(book, savings.ID))

	var errResp ErrorResponse
	assert.Equal(t, http.StatusNotFound, s.do("GET", s.bookPath(book, fmt.Sprintf("/transactions/%d", moved.ID)), nil, &errResp))

	var list []TransactionDTO
	require.Equal(t, http.StatusOK, s.do("GET", s.bookPath(book, "/transactions?type=expense"), nil, &list))
	require.Len(t, list, 1)
	assert.Equal(t, spent.ID, list[0].ID)

	var verify VerifyResponse
	require.Equal(t, http.StatusOK, s.do("GET", s.bookPath(book, "/balances/verify"), nil, &verify))
	assert.True(t, verify.Consistent)
}

func TestListTransactions_ToIncludesWholeDay(t *testing.T) {
	s := newTestServer(t)
	book, checking, _, food := s.setup()

	post := func(date string) TransactionDTO {
		var tx TransactionDTO
		require.Equal(t, http.StatusCreated, s.do("POST", s.bookPath(book, "/transactions"), IntentRequest{
			Type:            "expense",
			Amount:          "1",
			SourceAccountID: checking.ID,
			CategoryID:      &food.ID,
			Date:            date,
		}, &tx))
		return tx
	}

	undated := post("")
	onDay := post("2026-03-14")
	post("2026-03-15")

	var list []TransactionDTO
	require.Equal(t, http.StatusOK, s.do("GET", s.bookPath(book, "/transactions?type=expense&from=2026-03-14&to=2026-03-14"), nil, &list))
	require.Len(t, list, 1)
	assert.Equal(t, onDay.ID, list[0].ID)

	today := time.Now().UTC().Format("2006-01-02")
	list = nil
	require.Equal(t, http.StatusOK, s.do("GET", s.bookPath(book, "/transactions?type=expense&from="+today+"&to="+today), nil, &list))
	require.Len(t, list, 1)
	assert.Equal(t, undated.ID, list[0].ID)
}

func TestCreateTransaction_Errors(t *testing.T) {
	s := newTestServer(t)
	book, checking, _, _ := s.setup()
	var errResp ErrorResponse

	status := s.do("POST", s.bookPath(book, "/transactions"), IntentRequest{
		Type: "EXPENSE", Amount: "0", SourceAccountID: checking.ID,
	}, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "amount", errResp.Field)

	missing := int64(999)
	status = s.do("POST", s.bookPath(book, "/transactions"), IntentRequest{
		Type: "TRANSFER", Amount: "1", SourceAccountID: checking.ID, DestinationAccountID: &missing,
	}, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)

	status = s.do("POST", s.bookPath(book, "/transactions"), map[string]any{"type": "EXPENSE", "bogus": 1}, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)

	status = s.do("POST", s.bookPath(book, "/transactions"), IntentRequest{
		Type: "EXPENSE", Amount: "1.005", SourceAccountID: checking.ID,
	}, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateBatch_AllOrNothing(t *testing.T) {
	s := newTestServer(t)
	book, checking, _, _ := s.setup()

	var errResp ErrorResponse
	status := s.do("POST", s.bookPath(book, "/transactions/batch"), BatchRequest{Intents: []IntentRequest{
		{Type: "EXPENSE", Amount: "10", SourceAccountID: checking.ID},
		{Type: "EXPENSE", Amount: "0", SourceAccountID: checking.ID},
		{Type: "EXPENSE", Amount: "30", SourceAccountID: checking.ID},
	}}, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, errResp.Index)
	assert.Equal(t, 1, *errResp.Index)
	assert.Equal(t, "1000.00", s.balance(book, checking.ID))

	var created []TransactionDTO
	status = s.do("POST", s.bookPath(book, "/transactions/batch"), BatchRequest{Intents: []IntentRequest{
		{Type: "EXPENSE", Amount: "10", SourceAccountID: checking.ID},
		{Type: "INCOME", Amount: "30", SourceAccountID: checking.ID},
	}}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Len(t, created, 2)
	assert.Equal(t, "1020.00", s.balance(book, checking.ID))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(&model.IntentError{Index: -1, Field: "amount"}))
	assert.Equal(t, http.StatusBadRequest, statusFor(model.ErrReferenceNotFound))
	assert.Equal(t, http.StatusNotFound, statusFor(fmt.Errorf("tx: %w", model.ErrNotFound)))
	assert.Equal(t, http.StatusConflict, statusFor(model.ErrAccountInUse))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(model.ErrStorageFailure))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}
