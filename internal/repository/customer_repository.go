package repository

import (
	"context"
	"fmt"

	"shop-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// customerRepository implements the CustomerRepository interface using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

// Create inserts a new customer record and assigns its ID.
func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	customer.ID = uuid.NewString()

	query := `
		INSERT INTO customers (id, name, created_at, products)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, customer.ID, customer.Name, customer.CreatedAt, customer.Products)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("customer_id", customer.ID).
			Msg("failed to create customer")
		return fmt.Errorf("failed to create customer: %w", err)
	}

	r.logger.Debug().
		Str("customer_id", customer.ID).
		Int("products", len(customer.Products)).
		Msg("customer created successfully")

	return nil
}

// GetAll retrieves all customers ordered by creation time, newest first.
func (r *customerRepository) GetAll(ctx context.Context) ([]model.Customer, error) {
	query := `
		SELECT id, name, created_at, products
		FROM customers
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query customers")
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.Products)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan customer row")
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating customer rows")
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// GetByID retrieves a single customer by its ID.
func (r *customerRepository) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	query := `
		SELECT id, name, created_at, products
		FROM customers
		WHERE id = $1
	`

	var c model.Customer
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.Products)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("customer_id", id).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("customer_id", id).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return &c, nil
}

// AppendProduct atomically appends a product to the customer's product list.
// The jsonb concatenation happens store-side, so there is no read-modify-write
// window for concurrent appends to lose each other.
func (r *customerRepository) AppendProduct(ctx context.Context, id string, product model.Product) error {
	query := `
		UPDATE customers
		SET products = products || $2::jsonb
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, []model.Product{product})
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("customer_id", id).
			Str("product_id", product.ID).
			Msg("failed to append product")
		return fmt.Errorf("failed to append product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("customer_id", id).Msg("customer not found for append")
		return model.ErrCustomerNotFound
	}

	r.logger.Debug().
		Str("customer_id", id).
		Str("product_id", product.ID).
		Msg("product appended successfully")

	return nil
}

// ReplaceProducts overwrites the customer's entire product list. Two
// concurrent replacements race; the later write wins.
func (r *customerRepository) ReplaceProducts(ctx context.Context, id string, products []model.Product) error {
	query := `
		UPDATE customers
		SET products = $2
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, products)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("customer_id", id).
			Msg("failed to replace products")
		return fmt.Errorf("failed to replace products: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("customer_id", id).Msg("customer not found for replace")
		return model.ErrCustomerNotFound
	}

	return nil
}

// Delete removes a customer record. No existence pre-check.
func (r *customerRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM customers
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", id).Msg("failed to delete customer")
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	r.logger.Debug().
		Str("customer_id", id).
		Int64("rows_affected", tag.RowsAffected()).
		Msg("customer delete executed")

	return nil
}
