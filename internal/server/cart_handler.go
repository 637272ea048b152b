package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tillpoint/tillpoint/internal/catalog"
	"github.com/tillpoint/tillpoint/internal/models"
	"github.com/tillpoint/tillpoint/internal/register"
	"github.com/tillpoint/tillpoint/internal/storage"
)

// CartHandler serves the open-cart endpoints. The register is a
// single-session value; the handler serializes access to it since the HTTP
// server is concurrent, and persists the cart snapshot after every mutation.
type CartHandler struct {
	mu       sync.Mutex
	register *register.Register
	catalog  *catalog.Service
	store    storage.Store
	metrics  *Metrics
}

// NewCartHandler creates a cart handler around an existing register.
func NewCartHandler(reg *register.Register, svc *catalog.Service, store storage.Store, metrics *Metrics) *CartHandler {
	return &CartHandler{register: reg, catalog: svc, store: store, metrics: metrics}
}

type addToCartRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

type updateCartLineRequest struct {
	Name       *string          `json:"name"`
	UnitPrice  *decimal.Decimal `json:"unit_price"`
	FeePercent *decimal.Decimal `json:"fee_percent"`
	Quantity   *int64           `json:"quantity"`
}

type checkoutRequest struct {
	Payments []checkoutPayment `json:"payments"`
}

type checkoutPayment struct {
	Type   models.TenderType `json:"type"`
	Amount decimal.Decimal   `json:"amount"`
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	cart := h.register.Cart()
	h.mu.Unlock()

	respondJSON(w, http.StatusOK, buildReceipt(cart))
}

// AddItem handles POST /api/cart/items. The catalog item's pricing is
// snapshotted into the cart; adding the same item again bumps its quantity.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.catalog.Get(r.Context(), req.ItemID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.register.AddLineItem(item, req.Quantity); err != nil {
		respondDomainError(w, err)
		return
	}
	if err := h.store.SaveCart(r.Context(), h.register.Cart()); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, buildReceipt(h.register.Cart()))
}

// UpdateLine handles PUT /api/cart/items/{id}.
func (h *CartHandler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	var req updateCartLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	err := h.register.EditLineItem(chi.URLParam(r, "id"), register.LineItemUpdate{
		Name:       req.Name,
		UnitPrice:  req.UnitPrice,
		FeePercent: req.FeePercent,
		Quantity:   req.Quantity,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if err := h.store.SaveCart(r.Context(), h.register.Cart()); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, buildReceipt(h.register.Cart()))
}

// RemoveLine handles DELETE /api/cart/items/{id}.
func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.register.RemoveLineItem(chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, err)
		return
	}
	if err := h.store.SaveCart(r.Context(), h.register.Cart()); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, buildReceipt(h.register.Cart()))
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.register.Clear()
	if err := h.store.SaveCart(r.Context(), h.register.Cart()); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, buildReceipt(h.register.Cart()))
}

// Checkout handles POST /api/cart/checkout. It attaches the tendered
// payments, archives the transaction to history and resets the cart,
// responding with the final receipt.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	payments := make([]models.Payment, 0, len(req.Payments))
	for _, p := range req.Payments {
		payment, err := models.NewPayment(p.Type, p.Amount)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		payments = append(payments, payment)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	prev := h.register.Cart()
	txn, err := h.register.Checkout(payments)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.store.AppendTransaction(r.Context(), txn); err != nil {
		// Archival failed; put the cart back so the operation has no effect.
		if restored, rerr := register.Resume(prev); rerr == nil {
			h.register = restored
		}
		respondDomainError(w, err)
		return
	}
	if err := h.store.SaveCart(r.Context(), h.register.Cart()); err != nil {
		respondDomainError(w, err)
		return
	}

	tenders := make([]string, 0, len(txn.Payments))
	for _, p := range txn.Payments {
		tenders = append(tenders, string(p.Type))
	}
	h.metrics.ObserveCheckout(txn.Completed, tenders)

	slog.Info("Transaction archived",
		"transaction_id", txn.ID,
		"completed", txn.Completed,
		"payments", len(txn.Payments),
	)
	respondJSON(w, http.StatusCreated, buildReceipt(txn))
}
