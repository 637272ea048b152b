package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tillpoint/tillpoint/internal/storage"
)

// TransactionsHandler serves the completed-transaction history endpoints.
// History entries are immutable; the only mutation is deletion.
type TransactionsHandler struct {
	store storage.Store
}

// NewTransactionsHandler creates a history handler over the given store.
func NewTransactionsHandler(store storage.Store) *TransactionsHandler {
	return &TransactionsHandler{store: store}
}

// List handles GET /api/transactions.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	txns, err := h.store.ListTransactions(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	receipts := make([]Receipt, 0, len(txns))
	for _, txn := range txns {
		receipts = append(receipts, buildReceipt(txn))
	}
	respondJSON(w, http.StatusOK, receipts)
}

// Get handles GET /api/transactions/{id}.
func (h *TransactionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	txn, err := h.store.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, buildReceipt(txn))
}

// Delete handles DELETE /api/transactions/{id}. Deletion is terminal and
// never touches other history entries or the open cart.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	txnID := chi.URLParam(r, "id")
	if err := h.store.DeleteTransaction(r.Context(), txnID); err != nil {
		respondDomainError(w, err)
		return
	}
	slog.Info("Transaction deleted from history", "transaction_id", txnID)
	respondJSON(w, http.StatusNoContent, nil)
}
