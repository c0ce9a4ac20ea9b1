package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"shop-ledger/internal/model"
	"shop-ledger/internal/service"

	"github.com/rs/zerolog"
)

// maxUploadSize caps the in-memory size of a multipart request body.
const maxUploadSize = 10 << 20

// CustomerHandler handles customer-related HTTP requests.
type CustomerHandler struct {
	service service.CustomerService
	logger  zerolog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(service service.CustomerService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		logger:  logger.With().Str("handler", "customer").Logger(),
	}
}

// List handles GET /api/customers requests.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	customers, err := h.service.List(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if customers == nil {
		customers = []model.Customer{}
	}

	writeJSON(w, http.StatusOK, listResponse{Success: true, Customers: customers})
}

// Create handles POST /api/customers requests (multipart form with an
// optional image file).
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, http.StatusBadRequest, "invalid form data", h.logger)
		return
	}

	image, err := h.formImage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image upload", h.logger)
		return
	}

	req := &model.CreateCustomerRequest{
		CustomerName: r.FormValue("customerName"),
		ProductName:  r.FormValue("productName"),
		Price:        r.FormValue("price"),
		Status:       r.FormValue("status"),
		Image:        image,
	}

	customer, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, customerResponse{Success: true, Customer: customer})
}

// AddProduct handles POST /api/customers/{id}/products requests.
func (h *CustomerHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	customerID := pathCustomerID(r.URL.Path)
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "customer ID is required", h.logger)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, http.StatusBadRequest, "invalid form data", h.logger)
		return
	}

	image, err := h.formImage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image upload", h.logger)
		return
	}

	req := &model.AddProductRequest{
		ProductName: r.FormValue("productName"),
		Price:       r.FormValue("price"),
		Status:      r.FormValue("status"),
		Image:       image,
	}

	customer, err := h.service.AddProduct(r.Context(), customerID, req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customerResponse{Success: true, Customer: customer})
}

// changePaymentRequest is the JSON body of a change-payment request.
type changePaymentRequest struct {
	ProductID string `json:"productId"`
	NewStatus string `json:"newStatus"`
}

// ChangePayment handles POST /api/customers/{id}/change-payment requests.
// Accepts either a JSON body or form values.
func (h *CustomerHandler) ChangePayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	customerID := pathCustomerID(r.URL.Path)
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "customer ID is required", h.logger)
		return
	}

	var req changePaymentRequest
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form data", h.logger)
			return
		}
		req.ProductID = r.FormValue("productId")
		req.NewStatus = r.FormValue("newStatus")
	}

	products, err := h.service.ChangePaymentStatus(r.Context(), customerID, req.ProductID, req.NewStatus)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, productsResponse{Success: true, Products: products})
}

// Delete handles DELETE /api/customers/{id} requests.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	customerID := pathCustomerID(r.URL.Path)
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "customer ID is required", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), customerID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "customer deleted"})
}

// formImage reads the optional "image" file from the parsed form. A missing
// file is not an error.
func (h *CustomerHandler) formImage(r *http.Request) (*model.ImageUpload, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &model.ImageUpload{Filename: header.Filename, Data: data}, nil
}

// pathCustomerID extracts the {id} segment from /api/customers/{id}[/...].
func pathCustomerID(path string) string {
	rest := strings.TrimPrefix(path, "/api/customers/")
	if rest == path {
		return ""
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
