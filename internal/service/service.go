package service

import (
	"context"

	"shop-ledger/internal/model"
)

// CustomerService defines the interface for customer business logic.
type CustomerService interface {
	// List retrieves all customers, newest first.
	List(ctx context.Context) ([]model.Customer, error)

	// Create validates the request, uploads the image when present, and
	// persists a new customer with its mandatory first product.
	Create(ctx context.Context, req *model.CreateCustomerRequest) (*model.Customer, error)

	// AddProduct appends a product to an existing customer and returns the
	// customer as persisted after the append.
	AddProduct(ctx context.Context, customerID string, req *model.AddProductRequest) (*model.Customer, error)

	// ChangePaymentStatus updates the payment status of one product and
	// returns the customer's full product list after the update.
	ChangePaymentStatus(ctx context.Context, customerID, productID, newStatus string) ([]model.Product, error)

	// Delete removes a customer and all embedded products.
	Delete(ctx context.Context, customerID string) error
}
