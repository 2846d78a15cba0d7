package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/bizsuite/backend/internal/domain/ledger"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExpenseMirror(tenantID, expenditureID uuid.UUID, amount string) *ledger.Transaction {
	return &ledger.Transaction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                ledger.TransactionTypeExpense,
		TotalAmount:         decimal.RequireFromString(amount),
		PaidAmount:          decimal.RequireFromString(amount),
		Notes:               "Expenditure: office rent",
		OccurredAt:          time.Now().UTC(),
		ExpenditureID:       &expenditureID,
	}
}

func TestGormTransactionRepository_SaveAndFindByExpenditureID(t *testing.T) {
	db := newSQLiteDB(t, &models.TransactionModel{})
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	tenantID := newTenantID()
	expenditureID := uuid.New()
	mirror := newExpenseMirror(tenantID, expenditureID, "80.00")
	require.NoError(t, repo.Save(ctx, mirror))

	found, err := repo.FindByExpenditureID(ctx, tenantID, expenditureID)
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, ledger.TransactionTypeExpense, found.Type)
	assert.True(t, found.TotalAmount.Equal(decimal.RequireFromString("80.00")))
	require.NotNil(t, found.ExpenditureID)
	assert.Equal(t, expenditureID, *found.ExpenditureID)
}

func TestGormTransactionRepository_FindByExpenditureID_MissingReturnsNilNil(t *testing.T) {
	db := newSQLiteDB(t, &models.TransactionModel{})
	repo := NewGormTransactionRepository(db)

	found, err := repo.FindByExpenditureID(context.Background(), newTenantID(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestGormTransactionRepository_DeleteByExpenditureID_Idempotent(t *testing.T) {
	db := newSQLiteDB(t, &models.TransactionModel{})
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	tenantID := newTenantID()
	expenditureID := uuid.New()
	require.NoError(t, repo.Save(ctx, newExpenseMirror(tenantID, expenditureID, "80.00")))

	assert.NoError(t, repo.DeleteByExpenditureID(ctx, tenantID, expenditureID))
	assert.NoError(t, repo.DeleteByExpenditureID(ctx, tenantID, expenditureID))

	found, err := repo.FindByExpenditureID(ctx, tenantID, expenditureID)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestGormTransactionRepository_ListFiltersByType(t *testing.T) {
	db := newSQLiteDB(t, &models.TransactionModel{})
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	tenantID := newTenantID()
	require.NoError(t, repo.Save(ctx, newExpenseMirror(tenantID, uuid.New(), "80.00")))

	saleMirror := ledger.NewSaleTransaction(tenantID, uuid.New(),
		decimal.RequireFromString("45.00"), decimal.RequireFromString("45.00"),
		"Sale via CASH", time.Now().UTC())
	require.NoError(t, repo.Save(ctx, saleMirror))

	saleType := ledger.TransactionTypeSale
	filter := ledger.TransactionFilter{Type: &saleType}

	transactions, err := repo.FindAllForTenant(ctx, tenantID, filter)
	assert.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, ledger.TransactionTypeSale, transactions[0].Type)
	require.NotNil(t, transactions[0].SaleID)

	count, err := repo.CountForTenant(ctx, tenantID, filter)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	all, err := repo.FindAllForTenant(ctx, tenantID, ledger.TransactionFilter{})
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGormTransactionRepository_ListIsTenantScoped(t *testing.T) {
	db := newSQLiteDB(t, &models.TransactionModel{})
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newExpenseMirror(newTenantID(), uuid.New(), "80.00")))

	otherTenant := uuid.MustParse("99999999-9999-9999-9999-999999999999")
	transactions, err := repo.FindAllForTenant(ctx, otherTenant, ledger.TransactionFilter{})
	assert.NoError(t, err)
	assert.Empty(t, transactions)
}
