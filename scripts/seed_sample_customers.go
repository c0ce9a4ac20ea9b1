// Seeds the customers table with a few sample records for local development.
//
// Usage: go run scripts/seed_sample_customers.go
package main

import (
	"context"
	"fmt"
	"os"

	"shop-ledger/internal/config"
	"shop-ledger/internal/database"
	"shop-ledger/internal/model"
	"shop-ledger/internal/repository"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := repository.NewCustomerRepository(pool, logger)

	samples := []struct {
		customer string
		product  string
		price    string
		status   string
	}{
		{"Sara", "Dress", "120", "paid"},
		{"Omar", "Shoes", "80", "unpaid"},
		{"Lina", "Handbag", "240.50", ""},
	}

	for _, s := range samples {
		customer := model.NewCustomer(s.customer,
			model.NewProduct(s.product, s.price, s.status, model.PlaceholderImageURL))
		if err := repo.Create(ctx, customer); err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed customer %s: %v\n", s.customer, err)
			os.Exit(1)
		}
		fmt.Printf("seeded customer %s (%s)\n", s.customer, customer.ID)
	}

	fmt.Printf("done: %d customers seeded\n", len(samples))
}
