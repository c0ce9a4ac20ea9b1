package integration

import (
	"context"
	"testing"
	"time"

	"shop-ledger/internal/model"
	"shop-ledger/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewCustomerRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Create assigns an ID and persists the first product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		customer := model.NewCustomer("Sara", model.NewProduct("Dress", "120", "paid", model.PlaceholderImageURL))
		err := repo.Create(ctx, customer)
		require.NoError(t, err)
		require.NotEmpty(t, customer.ID)

		stored, err := repo.GetByID(ctx, customer.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "Sara", stored.Name)
		require.Len(t, stored.Products, 1)
		assert.Equal(t, "Dress", stored.Products[0].Name)
		assert.Equal(t, 120.0, stored.Products[0].Price)
		assert.Equal(t, model.StatusPaid, stored.Products[0].Status)
	})

	t.Run("GetAll orders by creation time descending", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedCustomers(t, testDB.Pool, 5)

		customers, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, customers, 5)

		assert.Equal(t, ids[len(ids)-1], customers[0].ID, "newest customer first")
		for i := 1; i < len(customers); i++ {
			assert.False(t, customers[i-1].CreatedAt.Before(customers[i].CreatedAt),
				"customers out of order at index %d", i)
		}
	})

	t.Run("GetByID returns nil for non-existent customer", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		customer, err := repo.GetByID(ctx, "no-such-customer")
		require.NoError(t, err)
		assert.Nil(t, customer)
	})

	t.Run("AppendProduct grows the list without touching existing entries", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedCustomers(t, testDB.Pool, 1)

		before, err := repo.GetByID(ctx, ids[0])
		require.NoError(t, err)
		require.NotNil(t, before)

		newProduct := model.NewProduct("Shoes", "80", "unpaid", model.PlaceholderImageURL)
		err = repo.AppendProduct(ctx, ids[0], newProduct)
		require.NoError(t, err)

		after, err := repo.GetByID(ctx, ids[0])
		require.NoError(t, err)
		require.NotNil(t, after)

		require.Len(t, after.Products, len(before.Products)+1)
		assert.Equal(t, before.Products, after.Products[:len(before.Products)],
			"existing products are byte-identical after append")
		assert.Equal(t, newProduct, after.Products[len(after.Products)-1])
	})

	t.Run("AppendProduct on unknown customer returns not found", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		err := repo.AppendProduct(ctx, "no-such-customer", model.NewProduct("Shoes", "80", "", model.PlaceholderImageURL))
		assert.ErrorIs(t, err, model.ErrCustomerNotFound)
	})

	t.Run("ReplaceProducts overwrites the whole list", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedCustomers(t, testDB.Pool, 1)

		stored, err := repo.GetByID(ctx, ids[0])
		require.NoError(t, err)
		require.NotNil(t, stored)

		stored.Products[0].Status = model.StatusPaid
		err = repo.ReplaceProducts(ctx, ids[0], stored.Products)
		require.NoError(t, err)

		after, err := repo.GetByID(ctx, ids[0])
		require.NoError(t, err)
		require.Len(t, after.Products, 1)
		assert.Equal(t, model.StatusPaid, after.Products[0].Status)
	})

	t.Run("Delete removes the customer and all embedded products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedCustomers(t, testDB.Pool, 2)

		err := repo.Delete(ctx, ids[0])
		require.NoError(t, err)

		customers, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Equal(t, ids[1], customers[0].ID)
	})

	t.Run("Delete on unknown customer is a silent no-op", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		err := repo.Delete(ctx, "no-such-customer")
		assert.NoError(t, err)
	})

	t.Run("Concurrent appends are both preserved", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedCustomers(t, testDB.Pool, 1)

		first := model.NewProduct("First", "1", "", model.PlaceholderImageURL)
		second := model.NewProduct("Second", "2", "", model.PlaceholderImageURL)

		done := make(chan error, 2)
		go func() { done <- repo.AppendProduct(ctx, ids[0], first) }()
		go func() { done <- repo.AppendProduct(ctx, ids[0], second) }()

		for i := 0; i < 2; i++ {
			select {
			case err := <-done:
				require.NoError(t, err)
			case <-time.After(10 * time.Second):
				t.Fatal("append did not complete")
			}
		}

		after, err := repo.GetByID(ctx, ids[0])
		require.NoError(t, err)
		assert.Len(t, after.Products, 3, "both concurrent appends survived")
	})
}
