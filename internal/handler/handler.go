package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"shop-ledger/internal/model"

	"github.com/rs/zerolog"
)

// All responses share the success envelope: {"success": true, ...payload} on
// the happy path, {"success": false, "error": message} otherwise.

type listResponse struct {
	Success   bool             `json:"success"`
	Customers []model.Customer `json:"customers"`
}

type customerResponse struct {
	Success  bool            `json:"success"`
	Customer *model.Customer `json:"customer"`
}

type productsResponse struct {
	Success  bool            `json:"success"`
	Products []model.Product `json:"products"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error envelope with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}

// writeDomainError maps a service error onto the HTTP taxonomy: validation
// failures are 400, missing customers/products 404, everything else 500 with
// the upstream message passed through.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var vErr *model.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Error(), logger)
	case errors.Is(err, model.ErrCustomerNotFound), errors.Is(err, model.ErrProductNotFound):
		writeError(w, http.StatusNotFound, err.Error(), logger)
	default:
		writeError(w, http.StatusInternalServerError, err.Error(), logger)
	}
}
