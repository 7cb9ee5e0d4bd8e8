package repositories_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"productsapi/internal/database"
	"productsapi/internal/models"
	"productsapi/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// repositoryFactories runs each contract test against every implementation.
var repositoryFactories = map[string]func(t *testing.T) repositories.ProductRepository{
	"memory": func(t *testing.T) repositories.ProductRepository {
		return repositories.NewMemoryProductRepository()
	},
	"gorm": func(t *testing.T) repositories.ProductRepository {
		ctx := context.Background()
		dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
		db, err := database.Open(ctx, database.Config{Driver: database.DriverSQLite, URL: dsn}, zap.NewNop())
		require.NoError(t, err)
		require.NoError(t, database.Migrate(ctx, db))
		t.Cleanup(func() { _ = database.Close(db) })
		return repositories.NewGORMProductRepository(db)
	},
}

func forEachRepository(t *testing.T, test func(t *testing.T, repo repositories.ProductRepository)) {
	for name, factory := range repositoryFactories {
		t.Run(name, func(t *testing.T) {
			test(t, factory(t))
		})
	}
}

func TestProductRepository_CreateAndFind(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo repositories.ProductRepository) {
		ctx := context.Background()

		product := &models.Product{Name: "Monitor", Price: 1000, Availability: false}
		require.NoError(t, repo.Create(ctx, product))
		assert.NotZero(t, product.ID)
		assert.False(t, product.CreatedAt.IsZero())

		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Monitor", found.Name)
		assert.Equal(t, 1000.0, found.Price)
		assert.False(t, found.Availability, "false availability must be stored as false")

		_, err = repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	})
}

func TestProductRepository_FindAllOrdersByPriceDesc(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo repositories.ProductRepository) {
		ctx := context.Background()

		empty, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		for _, p := range []models.Product{
			{Name: "Mouse", Price: 25},
			{Name: "Laptop", Price: 1200},
			{Name: "Keyboard", Price: 75},
		} {
			p := p
			require.NoError(t, repo.Create(ctx, &p))
		}

		products, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, "Laptop", products[0].Name)
		assert.Equal(t, "Keyboard", products[1].Name)
		assert.Equal(t, "Mouse", products[2].Name)
	})
}

func TestProductRepository_Update(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo repositories.ProductRepository) {
		ctx := context.Background()

		product := &models.Product{Name: "Chair", Price: 40, Availability: true}
		require.NoError(t, repo.Create(ctx, product))

		product.Name = "Armchair"
		product.Price = 90
		product.Availability = false
		require.NoError(t, repo.Update(ctx, product))

		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Armchair", found.Name)
		assert.Equal(t, 90.0, found.Price)
		assert.False(t, found.Availability)

		missing := &models.Product{ID: 999, Name: "Ghost", Price: 1}
		assert.ErrorIs(t, repo.Update(ctx, missing), repositories.ErrProductNotFound)
	})
}

func TestProductRepository_Delete(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo repositories.ProductRepository) {
		ctx := context.Background()

		first := &models.Product{Name: "Desk", Price: 150}
		require.NoError(t, repo.Create(ctx, first))

		require.NoError(t, repo.Delete(ctx, first.ID))
		_, err := repo.FindByID(ctx, first.ID)
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, first.ID), repositories.ErrProductNotFound)

		second := &models.Product{Name: "Shelf", Price: 60}
		require.NoError(t, repo.Create(ctx, second))
		assert.Greater(t, second.ID, first.ID, "ids are never reused")
	})
}
