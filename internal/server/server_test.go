package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/tillpoint/tillpoint/internal/catalog"
	"github.com/tillpoint/tillpoint/internal/models"
	"github.com/tillpoint/tillpoint/internal/register"
	"github.com/tillpoint/tillpoint/internal/storage/sqlite"
)

// setupTestServer wires a real sqlite store behind the full router.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "tillpoint-server-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	metrics := NewMetrics()
	catalogSvc := catalog.NewService(store)
	router := NewRouter(
		NewCatalogHandler(catalogSvc),
		NewCartHandler(register.New(), catalogSvc, store, metrics),
		NewTransactionsHandler(store),
		metrics,
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestCatalogEndpoints(t *testing.T) {
	server := setupTestServer(t)

	var created models.Item
	status := doJSON(t, http.MethodPost, server.URL+"/api/items",
		map[string]any{"name": "Latte", "unit_price": 4.50, "fee_percent": 10}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create item status = %d, want 201", status)
	}
	if created.ID == "" {
		t.Fatal("expected a generated item id")
	}

	var items []models.Item
	if status := doJSON(t, http.MethodGet, server.URL+"/api/items", nil, &items); status != http.StatusOK {
		t.Fatalf("list items status = %d, want 200", status)
	}
	if len(items) != 1 || items[0].Name != "Latte" {
		t.Errorf("unexpected listing: %+v", items)
	}

	if status := doJSON(t, http.MethodPost, server.URL+"/api/items",
		map[string]any{"name": "Bad", "unit_price": -1, "fee_percent": 0}, nil); status != http.StatusBadRequest {
		t.Errorf("negative price status = %d, want 400", status)
	}

	if status := doJSON(t, http.MethodPut, server.URL+"/api/items/missing",
		map[string]any{"name": "Nope"}, nil); status != http.StatusNotFound {
		t.Errorf("update missing item status = %d, want 404", status)
	}
}

func TestCartAndCheckoutFlow(t *testing.T) {
	server := setupTestServer(t)

	// Catalog item at price 10 with a 10% fee; quantity 4 -> subtotal 44.
	var item models.Item
	if status := doJSON(t, http.MethodPost, server.URL+"/api/items",
		map[string]any{"name": "Latte", "unit_price": 10, "fee_percent": 10}, &item); status != http.StatusCreated {
		t.Fatalf("create item status = %d, want 201", status)
	}

	var cart Receipt
	status := doJSON(t, http.MethodPost, server.URL+"/api/cart/items",
		map[string]any{"item_id": item.ID, "quantity": 4}, &cart)
	if status != http.StatusOK {
		t.Fatalf("add to cart status = %d, want 200", status)
	}
	if cart.Subtotal != "44.00" || cart.ItemCount != 4 {
		t.Errorf("cart subtotal = %s count = %d, want 44.00 / 4", cart.Subtotal, cart.ItemCount)
	}

	t.Run("underpaid checkout archives as not completed", func(t *testing.T) {
		var receipt Receipt
		status := doJSON(t, http.MethodPost, server.URL+"/api/cart/checkout",
			map[string]any{"payments": []map[string]any{
				{"type": "cash", "amount": 20},
				{"type": "credit", "amount": 20},
			}}, &receipt)
		if status != http.StatusCreated {
			t.Fatalf("checkout status = %d, want 201", status)
		}
		if receipt.TotalPaid != "40.40" || receipt.Remaining != "3.60" {
			t.Errorf("paid = %s remaining = %s, want 40.40 / 3.60", receipt.TotalPaid, receipt.Remaining)
		}
		if receipt.Completed {
			t.Error("underpaid receipt must not be completed")
		}

		// The cart is reset after checkout.
		var after Receipt
		if status := doJSON(t, http.MethodGet, server.URL+"/api/cart", nil, &after); status != http.StatusOK {
			t.Fatalf("get cart status = %d, want 200", status)
		}
		if after.ItemCount != 0 || after.ID == receipt.ID {
			t.Errorf("cart not reset: %+v", after)
		}
	})

	t.Run("overpaid checkout completes with change", func(t *testing.T) {
		if status := doJSON(t, http.MethodPost, server.URL+"/api/cart/items",
			map[string]any{"item_id": item.ID, "quantity": 4}, nil); status != http.StatusOK {
			t.Fatalf("add to cart status = %d, want 200", status)
		}

		var receipt Receipt
		status := doJSON(t, http.MethodPost, server.URL+"/api/cart/checkout",
			map[string]any{"payments": []map[string]any{{"type": "cash", "amount": 50}}}, &receipt)
		if status != http.StatusCreated {
			t.Fatalf("checkout status = %d, want 201", status)
		}
		if !receipt.Completed || receipt.Change != "6.00" || receipt.Remaining != "0.00" {
			t.Errorf("unexpected receipt: completed=%v change=%s remaining=%s",
				receipt.Completed, receipt.Change, receipt.Remaining)
		}
	})

	t.Run("history lists and deletes archived transactions", func(t *testing.T) {
		var receipts []Receipt
		if status := doJSON(t, http.MethodGet, server.URL+"/api/transactions", nil, &receipts); status != http.StatusOK {
			t.Fatalf("list transactions status = %d, want 200", status)
		}
		if len(receipts) != 2 {
			t.Fatalf("got %d transactions, want 2", len(receipts))
		}

		victim := receipts[0].ID
		if status := doJSON(t, http.MethodDelete, server.URL+"/api/transactions/"+victim, nil, nil); status != http.StatusNoContent {
			t.Fatalf("delete status = %d, want 204", status)
		}
		if status := doJSON(t, http.MethodGet, server.URL+"/api/transactions/"+victim, nil, nil); status != http.StatusNotFound {
			t.Errorf("deleted transaction status = %d, want 404", status)
		}

		// The other record survives.
		if status := doJSON(t, http.MethodGet, server.URL+"/api/transactions/"+receipts[1].ID, nil, nil); status != http.StatusOK {
			t.Errorf("surviving transaction status = %d, want 200", status)
		}
	})

	t.Run("rejections", func(t *testing.T) {
		// Empty cart cannot check out.
		if status := doJSON(t, http.MethodPost, server.URL+"/api/cart/checkout",
			map[string]any{"payments": []map[string]any{{"type": "cash", "amount": 10}}}, nil); status != http.StatusBadRequest {
			t.Errorf("empty cart checkout status = %d, want 400", status)
		}

		// Unknown tender type.
		if status := doJSON(t, http.MethodPost, server.URL+"/api/cart/items",
			map[string]any{"item_id": item.ID, "quantity": 1}, nil); status != http.StatusOK {
			t.Fatal("failed to add item for rejection test")
		}
		if status := doJSON(t, http.MethodPost, server.URL+"/api/cart/checkout",
			map[string]any{"payments": []map[string]any{{"type": "voucher", "amount": 10}}}, nil); status != http.StatusBadRequest {
			t.Errorf("unknown tender status = %d, want 400", status)
		}

		// Unknown line item id.
		if status := doJSON(t, http.MethodDelete, server.URL+"/api/cart/items/missing", nil, nil); status != http.StatusNotFound {
			t.Errorf("remove missing line status = %d, want 404", status)
		}
	})
}

func TestHealthAndMetrics(t *testing.T) {
	server := setupTestServer(t)

	if status := doJSON(t, http.MethodGet, server.URL+"/healthz", nil, nil); status != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", status)
	}

	resp, err := http.Get(fmt.Sprintf("%s/metrics", server.URL))
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("metrics status = %d, want 200", resp.StatusCode)
	}
}
