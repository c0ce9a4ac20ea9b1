package integration

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shop-ledger/internal/handler"
	"shop-ledger/internal/imagestore"
	"shop-ledger/internal/model"
	"shop-ledger/internal/repository"
	"shop-ledger/internal/router"
	"shop-ledger/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	customerRepo := repository.NewCustomerRepository(testDB.Pool, logger)
	customerService := service.NewCustomerService(customerRepo, imagestore.NewDisabledUploader(), logger)
	customerHandler := handler.NewCustomerHandler(customerService, logger)

	return router.New(customerHandler, logger)
}

// postMultipart sends a multipart form POST to the test server.
func postMultipart(t *testing.T, server http.Handler, path string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	return w
}

type customerEnvelope struct {
	Success  bool           `json:"success"`
	Customer model.Customer `json:"customer"`
	Error    string         `json:"error"`
}

type listEnvelope struct {
	Success   bool             `json:"success"`
	Customers []model.Customer `json:"customers"`
}

type productsEnvelope struct {
	Success  bool            `json:"success"`
	Products []model.Product `json:"products"`
}

func TestCustomerAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("Full customer lifecycle", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		// Create a customer with its first product
		w := postMultipart(t, server, "/api/customers", map[string]string{
			"customerName": "Sara",
			"productName":  "Dress",
			"price":        "120",
			"status":       "paid",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created customerEnvelope
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.True(t, created.Success)
		require.NotEmpty(t, created.Customer.ID)
		require.Len(t, created.Customer.Products, 1)
		assert.Equal(t, 120.0, created.Customer.Products[0].Price)
		assert.Equal(t, model.StatusPaid, created.Customer.Products[0].Status)
		assert.Equal(t, model.PlaceholderImageURL, created.Customer.Products[0].Image,
			"no image supplied, placeholder used")

		customerID := created.Customer.ID

		// Add a second product with an unknown status literal
		w = postMultipart(t, server, "/api/customers/"+customerID+"/products", map[string]string{
			"productName": "Shoes",
			"price":       "not-a-number",
			"status":      "xyz",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var updated customerEnvelope
		require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
		require.Len(t, updated.Customer.Products, 2)
		assert.Equal(t, "Dress", updated.Customer.Products[0].Name, "first product untouched")
		assert.Equal(t, model.StatusUnpaid, updated.Customer.Products[1].Status, "unknown status normalised")
		assert.Equal(t, 0.0, updated.Customer.Products[1].Price, "unparsable price coerced to zero")

		productID := updated.Customer.Products[1].ID

		// Mark the second product as paid
		req := httptest.NewRequest(http.MethodPost, "/api/customers/"+customerID+"/change-payment",
			strings.NewReader(`{"productId": "`+productID+`", "newStatus": "paid"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var changed productsEnvelope
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&changed))
		require.Len(t, changed.Products, 2)
		assert.Equal(t, model.StatusUnpaid, changed.Products[0].Status, "other product untouched")
		assert.Equal(t, model.StatusPaid, changed.Products[1].Status)

		// List shows the customer
		req = httptest.NewRequest(http.MethodGet, "/api/customers", nil)
		rec = httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var list listEnvelope
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
		require.Len(t, list.Customers, 1)
		assert.Equal(t, customerID, list.Customers[0].ID)

		// Delete the customer
		req = httptest.NewRequest(http.MethodDelete, "/api/customers/"+customerID, nil)
		rec = httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		// The deleted customer never appears again
		req = httptest.NewRequest(http.MethodGet, "/api/customers", nil)
		rec = httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
		assert.Empty(t, list.Customers)
	})

	t.Run("Listing is ordered newest first", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedCustomers(t, testDB.Pool, 3)

		req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var list listEnvelope
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
		require.Len(t, list.Customers, 3)
		assert.Equal(t, ids[2], list.Customers[0].ID)
		assert.Equal(t, ids[0], list.Customers[2].ID)
	})

	t.Run("Create without required fields returns 400", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		w := postMultipart(t, server, "/api/customers", map[string]string{
			"productName": "Dress",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp customerEnvelope
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "customerName")
	})

	t.Run("Change-payment for unknown customer returns 404", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodPost, "/api/customers/no-such-id/change-payment",
			strings.NewReader(`{"productId": "p1", "newStatus": "paid"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Add product to unknown customer returns 404", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		w := postMultipart(t, server, "/api/customers/no-such-id/products", map[string]string{
			"productName": "Shoes",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Delete unknown customer still succeeds", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodDelete, "/api/customers/no-such-id", nil)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Health endpoint", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status": "healthy"}`, rec.Body.String())
	})
}
