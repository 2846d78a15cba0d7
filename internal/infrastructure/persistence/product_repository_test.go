package persistence

import (
	"context"
	"testing"

	"github.com/bizsuite/backend/internal/domain/catalog"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/shared/valueobject"
	"github.com/bizsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(t *testing.T, tenantID uuid.UUID, name, sku string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(
		tenantID,
		name,
		sku,
		"",
		valueobject.NewMoney(decimal.RequireFromString("30.00")),
		valueobject.NewMoney(decimal.RequireFromString("12.00")),
	)
	require.NoError(t, err)
	return product
}

func TestGormProductRepository_SaveRoundTripsStock(t *testing.T) {
	db := newSQLiteDB(t, &models.ProductModel{})
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	tenantID := newTenantID()
	product := newProduct(t, tenantID, "Widget", "WID-001")
	require.NoError(t, product.AdjustStock(7))
	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindByIDForTenant(ctx, tenantID, product.ID)
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 7, found.StockQuantity)
	assert.True(t, found.UnitPrice.Equal(decimal.RequireFromString("30.00")))
	assert.True(t, found.CostPrice.Equal(decimal.RequireFromString("12.00")))
}

func TestGormProductRepository_UpdatePersistsChanges(t *testing.T) {
	db := newSQLiteDB(t, &models.ProductModel{})
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	tenantID := newTenantID()
	product := newProduct(t, tenantID, "Widget", "WID-001")
	require.NoError(t, repo.Save(ctx, product))

	require.NoError(t, product.Update("Widget Mk2", "WID-002", "revised",
		valueobject.NewMoney(decimal.RequireFromString("35.00")),
		valueobject.NewMoney(decimal.RequireFromString("14.00"))))
	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindByIDForTenant(ctx, tenantID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget Mk2", found.Name)
	assert.Equal(t, "WID-002", found.SKU)
	assert.True(t, found.UnitPrice.Equal(decimal.RequireFromString("35.00")))
}

func TestGormProductRepository_ListPaginates(t *testing.T) {
	db := newSQLiteDB(t, &models.ProductModel{})
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	tenantID := newTenantID()
	require.NoError(t, repo.Save(ctx, newProduct(t, tenantID, "Widget", "WID-001")))
	require.NoError(t, repo.Save(ctx, newProduct(t, tenantID, "Gadget", "GAD-001")))
	require.NoError(t, repo.Save(ctx, newProduct(t, tenantID, "Gizmo", "GIZ-001")))

	filter := shared.Filter{Page: 1, PageSize: 2}
	products, err := repo.FindAllForTenant(ctx, tenantID, filter)
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	count, err := repo.CountForTenant(ctx, tenantID, filter)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestGormProductRepository_DeleteForTenant(t *testing.T) {
	db := newSQLiteDB(t, &models.ProductModel{})
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	tenantID := newTenantID()
	product := newProduct(t, tenantID, "Widget", "WID-001")
	require.NoError(t, repo.Save(ctx, product))

	assert.NoError(t, repo.DeleteForTenant(ctx, tenantID, product.ID))
	assert.ErrorIs(t, repo.DeleteForTenant(ctx, tenantID, product.ID), shared.ErrNotFound)

	found, err := repo.FindByIDForTenant(ctx, tenantID, product.ID)
	assert.NoError(t, err)
	assert.Nil(t, found)
}
