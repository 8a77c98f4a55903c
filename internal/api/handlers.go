package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pterm/pterm"

	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/currency"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/service"
)

const headerUserID = "X-User-ID"

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	svc    *service.Service
	logger *pterm.Logger
}

func NewHandler(svc *service.Service, logger *pterm.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// BOOKS
// =============================================================================

func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.Book.ListBooks(r.Context())
	if err != nil {
		h.fail(w, "Failed to list books", err)
		return
	}

	dtos := make([]BookDTO, len(books))
	for i, b := range books {
		dtos[i] = toBookDTO(b)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if !decode(w, r, &req) {
		return
	}

	book, err := h.svc.Book.CreateBook(r.Context(), req.Name, req.Currency)
	if err != nil {
		h.fail(w, "Failed to create book", err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookDTO(book))
}

func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toBookDTO(book))
}

// =============================================================================
// ACCOUNTS
// =============================================================================

// ListAccounts returns the book's accounts.
// GET /api/books/{bookID}/accounts?archived=true
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}

	withArchived, _ := strconv.ParseBool(r.URL.Query().Get("archived"))
	accounts, err := h.svc.Account.ListAccounts(r.Context(), book.ID, withArchived)
	if err != nil {
		h.fail(w, "Failed to list accounts", err)
		return
	}

	dtos := make([]AccountDTO, len(accounts))
	for i, a := range accounts {
		dtos[i] = toAccountDTO(a, book.Currency)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateAccount creates an account, posting its opening balance when one
// is given.
// POST /api/books/{bookID}/accounts
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}

	var req CreateAccountRequest
	if !decode(w, r, &req) {
		return
	}

	var opening int64
	if req.OpeningBalance != "" {
		var err error
		opening, err = currency.ParseMinor(req.OpeningBalance, book.Currency)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid opening_balance", err)
			return
		}
	}

	acc, err := h.svc.CreateAccountWithBalance(r.Context(), book.ID, req.Name, model.AccountKind(req.Kind), opening, userID(r))
	if err != nil {
		h.fail(w, "Failed to create account", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAccountDTO(acc, book.Currency))
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	acc, err := h.svc.Account.GetAccount(r.Context(), book.ID, id)
	if err != nil {
		h.fail(w, "Failed to get account", err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountDTO(acc, book.Currency))
}

// ArchiveAccount sets or clears the archived flag. An empty body archives.
// POST /api/books/{bookID}/accounts/{id}/archive
func (h *Handler) ArchiveAccount(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	archived := true
	if r.ContentLength > 0 {
		var req ArchiveAccountRequest
		if !decode(w, r, &req) {
			return
		}
		if req.Archived != nil {
			archived = *req.Archived
		}
	}

	if err := h.svc.Account.ArchiveAccount(r.Context(), book.ID, id, archived); err != nil {
		h.fail(w, "Failed to archive account", err)
		return
	}

	acc, err := h.svc.Account.GetAccount(r.Context(), book.ID, id)
	if err != nil {
		h.fail(w, "Failed to get account", err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountDTO(acc, book.Currency))
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Account.DeleteAccount(r.Context(), book.ID, id); err != nil {
		h.fail(w, "Failed to delete account", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CATEGORIES
// =============================================================================

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}

	cats, err := h.svc.Category.ListCategories(r.Context(), book.ID)
	if err != nil {
		h.fail(w, "Failed to list categories", err)
		return
	}

	dtos := make([]CategoryDTO, len(cats))
	for i, c := range cats {
		dtos[i] = toCategoryDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}

	var req CreateCategoryRequest
	if !decode(w, r, &req) {
		return
	}

	cat, err := h.svc.Category.CreateCategory(r.Context(), book.ID, req.Name, model.CategoryKind(req.Kind))
	if err != nil {
		h.fail(w, "Failed to create category", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryDTO(cat))
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// ListTransactions returns transactions, newest first.
// GET /api/books/{bookID}/transactions?account_id=&type=&from=&to=&limit=&offset=
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query", err)
		return
	}

	details, err := h.svc.Transaction.ListTransactions(r.Context(), book.ID, filter)
	if err != nil {
		h.fail(w, "Failed to list transactions", err)
		return
	}

	dtos := make([]TransactionDTO, len(details))
	for i, d := range details {
		dtos[i] = toTransactionDTO(d, book.Currency)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := h.svc.Transaction.GetTransaction(r.Context(), book.ID, id)
	if err != nil {
		h.fail(w, "Failed to get transaction", err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTO(detail, book.Currency))
}

// CreateTransaction posts a single intent.
// POST /api/books/{bookID}/transactions
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}

	var req IntentRequest
	if !decode(w, r, &req) {
		return
	}

	intent, err := req.toIntent(book)
	if err != nil {
		h.fail(w, "Invalid transaction", err)
		return
	}

	detail, err := h.svc.Transaction.CreateTransaction(r.Context(), intent, userID(r))
	if err != nil {
		h.fail(w, "Failed to create transaction", err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionDTO(detail, book.Currency))
}

// CreateBatch posts several intents; either all of them commit or none.
// POST /api/books/{bookID}/transactions/batch
func (h *Handler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}

	var req BatchRequest
	if !decode(w, r, &req) {
		return
	}

	intents := make([]model.Intent, len(req.Intents))
	for i, ir := range req.Intents {
		intent, err := ir.toIntent(book)
		if err != nil {
			var ie *model.IntentError
			if errors.As(err, &ie) {
				err = &model.IntentError{Index: i, Field: ie.Field, Reason: ie.Reason}
			}
			h.fail(w, "Invalid transaction", err)
			return
		}
		intents[i] = intent
	}

	details, err := h.svc.Transaction.CreateBatch(r.Context(), book.ID, intents, userID(r))
	if err != nil {
		h.fail(w, "Failed to create batch", err)
		return
	}

	dtos := make([]TransactionDTO, len(details))
	for i, d := range details {
		dtos[i] = toTransactionDTO(d, book.Currency)
	}
	writeJSON(w, http.StatusCreated, dtos)
}

// UpdateTransaction replaces a transaction with a new intent.
// PUT /api/books/{bookID}/transactions/{id}
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req IntentRequest
	if !decode(w, r, &req) {
		return
	}

	intent, err := req.toIntent(book)
	if err != nil {
		h.fail(w, "Invalid transaction", err)
		return
	}

	detail, err := h.svc.Transaction.UpdateTransaction(r.Context(), book.ID, id, intent, userID(r))
	if err != nil {
		h.fail(w, "Failed to update transaction", err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTO(detail, book.Currency))
}

// PatchTransaction applies a partial update.
// PATCH /api/books/{bookID}/transactions/{id}
func (h *Handler) PatchTransaction(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req PatchRequest
	if !decode(w, r, &req) {
		return
	}

	patch, err := req.toPatch(book)
	if err != nil {
		h.fail(w, "Invalid patch", err)
		return
	}

	detail, err := h.svc.Transaction.PatchTransaction(r.Context(), book.ID, id, patch, userID(r))
	if err != nil {
		h.fail(w, "Failed to patch transaction", err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTO(detail, book.Currency))
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Transaction.DeleteTransaction(r.Context(), book.ID, id); err != nil {
		h.fail(w, "Failed to delete transaction", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// BALANCES
// =============================================================================

func (h *Handler) VerifyBalances(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}

	drifts, err := h.svc.Transaction.VerifyBalances(r.Context(), book.ID)
	if err != nil {
		h.fail(w, "Failed to verify balances", err)
		return
	}
	writeJSON(w, http.StatusOK, toVerifyResponse(drifts, book.Currency))
}

func (h *Handler) RebuildBalances(w http.ResponseWriter, r *http.Request) {
	book, ok := h.book(w, r)
	if !ok {
		return
	}

	drifts, err := h.svc.Transaction.RebuildBalances(r.Context(), book.ID)
	if err != nil {
		h.fail(w, "Failed to rebuild balances", err)
		return
	}
	writeJSON(w, http.StatusOK, toVerifyResponse(drifts, book.Currency))
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) book(w http.ResponseWriter, r *http.Request) (*model.Book, bool) {
	book, err := h.svc.Book.GetBook(r.Context(), chi.URLParam(r, "bookID"))
	if err != nil {
		h.fail(w, "Failed to get book", err)
		return nil, false
	}
	return book, true
}

// fail maps an engine error onto its HTTP status and writes it.
func (h *Handler) fail(w http.ResponseWriter, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(message, h.logger.Args("error", err.Error()))
	}

	resp := ErrorResponse{Error: message, Details: err.Error()}
	var ie *model.IntentError
	if errors.As(err, &ie) {
		resp.Field = ie.Field
		if ie.Index >= 0 {
			index := ie.Index
			resp.Index = &index
		}
	}
	writeJSON(w, status, resp)
}

func statusFor(err error) int {
	switch {
	case model.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrDuplicate), errors.Is(err, model.ErrAccountInUse):
		return http.StatusConflict
	case errors.Is(err, model.ErrStorageFailure):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid id", err)
		return 0, false
	}
	return id, true
}

// userID identifies the caller. Authentication happens upstream.
func userID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerUserID))
}

func parseFilter(r *http.Request) (model.TransactionFilter, error) {
	q := r.URL.Query()
	var filter model.TransactionFilter

	if v := q.Get("account_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("account_id: %w", err)
		}
		filter.AccountID = &id
	}
	if v := q.Get("type"); v != "" {
		t := model.TxType(strings.ToUpper(v))
		if !t.Valid() {
			return filter, fmt.Errorf("type: unknown transaction type %q", v)
		}
		filter.Type = &t
	}
	for key, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		if v := q.Get(key); v != "" {
			d, err := time.Parse(constants.DateFormat, v)
			if err != nil {
				return filter, fmt.Errorf("%s: expected %s", key, constants.DateFormat)
			}
			if key == "to" {
				// the whole day is included
				d = model.EndOfDay(d)
			}
			*dst = &d
		}
	}
	for key, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		if v := q.Get(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return filter, fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}
	return filter, nil
}

func (req IntentRequest) toIntent(book *model.Book) (model.Intent, error) {
	intent := model.Intent{
		BookID:               book.ID,
		Type:                 model.TxType(strings.ToUpper(req.Type)),
		SourceAccountID:      req.SourceAccountID,
		DestinationAccountID: req.DestinationAccountID,
		CategoryID:           req.CategoryID,
		Description:          req.Description,
		Counterparty:         req.Counterparty,
	}

	amount, err := currency.ParseMinor(req.Amount, book.Currency)
	if err != nil {
		return intent, &model.IntentError{Index: -1, Field: "amount", Reason: err.Error()}
	}
	intent.Amount = amount

	if req.Date != "" {
		intent.Date, err = time.Parse(constants.DateFormat, req.Date)
		if err != nil {
			return intent, &model.IntentError{Index: -1, Field: "date", Reason: "expected " + constants.DateFormat}
		}
	}
	return intent, nil
}

func (req PatchRequest) toPatch(book *model.Book) (model.TransactionPatch, error) {
	patch := model.TransactionPatch{
		SourceAccountID:      req.SourceAccountID,
		DestinationAccountID: req.DestinationAccountID,
		ClearDestination:     req.ClearDestination,
		CategoryID:           req.CategoryID,
		ClearCategory:        req.ClearCategory,
		Description:          req.Description,
		Counterparty:         req.Counterparty,
		ClearCounterparty:    req.ClearCounterparty,
	}

	if req.Type != nil {
		t := model.TxType(strings.ToUpper(*req.Type))
		patch.Type = &t
	}
	if req.Amount != nil {
		amount, err := currency.ParseMinor(*req.Amount, book.Currency)
		if err != nil {
			return patch, &model.IntentError{Index: -1, Field: "amount", Reason: err.Error()}
		}
		patch.Amount = &amount
	}
	if req.Date != nil {
		d, err := time.Parse(constants.DateFormat, *req.Date)
		if err != nil {
			return patch, &model.IntentError{Index: -1, Field: "date", Reason: "expected " + constants.DateFormat}
		}
		patch.Date = &d
	}
	return patch, nil
}

func toVerifyResponse(drifts []model.BalanceDrift, code string) VerifyResponse {
	resp := VerifyResponse{Consistent: len(drifts) == 0, Drifts: make([]DriftDTO, 0, len(drifts))}
	for _, d := range drifts {
		resp.Drifts = append(resp.Drifts, DriftDTO{
			AccountID: d.AccountID,
			Name:      d.Name,
			Stored:    currency.FormatMinor(d.Stored, code),
			Expected:  currency.FormatMinor(d.Expected, code),
		})
	}
	return resp
}
