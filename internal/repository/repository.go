package repository

import (
	"context"

	"shop-ledger/internal/model"
)

// CustomerRepository defines the interface for customer data access operations.
// Customers are stored as single documents: one row per customer with the
// product list embedded as a jsonb array.
type CustomerRepository interface {
	// Create inserts a new customer record and assigns its ID.
	Create(ctx context.Context, customer *model.Customer) error

	// GetAll retrieves all customers ordered by creation time, newest first.
	GetAll(ctx context.Context) ([]model.Customer, error)

	// GetByID retrieves a single customer by its ID. Returns (nil, nil) when
	// the customer does not exist.
	GetByID(ctx context.Context, id string) (*model.Customer, error)

	// AppendProduct atomically appends a product to the customer's product
	// list without rewriting the existing entries. Returns
	// model.ErrCustomerNotFound if the customer does not exist.
	AppendProduct(ctx context.Context, id string, product model.Product) error

	// ReplaceProducts overwrites the customer's entire product list. Callers
	// that read-modify-write through this method race with concurrent writers;
	// the later write wins.
	ReplaceProducts(ctx context.Context, id string, products []model.Product) error

	// Delete removes a customer and all embedded products. Deleting an
	// unknown ID is a silent no-op.
	Delete(ctx context.Context, id string) error
}
