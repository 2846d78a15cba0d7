package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bizsuite/backend/internal/domain/funding"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/shared/valueobject"
	"github.com/bizsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newSQLiteDB(t *testing.T, dst ...interface{}) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// In-memory SQLite databases are per-connection; pin the pool to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(dst...))
	return db
}

func newTenantID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newSource(t *testing.T, tenantID uuid.UUID, amount string) *funding.FundingSource {
	t.Helper()
	source, err := funding.NewFundingSource(
		tenantID,
		funding.SourceTypeLoan,
		"Equipment loan",
		"First National",
		valueobject.NewMoney(decimal.RequireFromString(amount)),
	)
	require.NoError(t, err)
	return source
}

func TestGormFundingSourceRepository_SaveAndFind(t *testing.T) {
	db := newSQLiteDB(t, &models.FundingSourceModel{})
	repo := NewGormFundingSourceRepository(db)
	ctx := context.Background()

	tenantID := newTenantID()
	source := newSource(t, tenantID, "1200.50")
	require.NoError(t, repo.Save(ctx, source))

	found, err := repo.FindByIDForTenant(ctx, tenantID, source.ID)
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, source.ID, found.ID)
	assert.Equal(t, funding.SourceTypeLoan, found.Type)
	assert.True(t, found.Amount.Equal(decimal.RequireFromString("1200.50")))
	assert.True(t, found.RemainingBalance.Equal(found.Amount))
}

func TestGormFundingSourceRepository_FindMissingReturnsNilNil(t *testing.T) {
	db := newSQLiteDB(t, &models.FundingSourceModel{})
	repo := NewGormFundingSourceRepository(db)

	found, err := repo.FindByIDForTenant(context.Background(), newTenantID(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestGormFundingSourceRepository_FindIsTenantScoped(t *testing.T) {
	db := newSQLiteDB(t, &models.FundingSourceModel{})
	repo := NewGormFundingSourceRepository(db)
	ctx := context.Background()

	tenantID := newTenantID()
	source := newSource(t, tenantID, "100.00")
	require.NoError(t, repo.Save(ctx, source))

	otherTenant := uuid.MustParse("99999999-9999-9999-9999-999999999999")
	found, err := repo.FindByIDForTenant(ctx, otherTenant, source.ID)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestGormFundingSourceRepository_AddToBalance(t *testing.T) {
	db := newSQLiteDB(t, &models.FundingSourceModel{})
	repo := NewGormFundingSourceRepository(db)
	ctx := context.Background()

	tenantID := newTenantID()
	source := newSource(t, tenantID, "100.00")
	require.NoError(t, repo.Save(ctx, source))

	err := repo.AddToBalance(ctx, tenantID, source.ID, decimal.RequireFromString("25.00"))
	assert.NoError(t, err)

	found, err := repo.FindByIDForTenant(ctx, tenantID, source.ID)
	require.NoError(t, err)
	assert.True(t, found.RemainingBalance.Equal(decimal.RequireFromString("125.00")))
}

func TestGormFundingSourceRepository_AddToBalance_MissingSource(t *testing.T) {
	db := newSQLiteDB(t, &models.FundingSourceModel{})
	repo := NewGormFundingSourceRepository(db)

	err := repo.AddToBalance(context.Background(), newTenantID(), uuid.New(), decimal.RequireFromString("10.00"))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormFundingSourceRepository_SubtractFromBalance(t *testing.T) {
	db := newSQLiteDB(t, &models.FundingSourceModel{})
	repo := NewGormFundingSourceRepository(db)
	ctx := context.Background()

	tenantID := newTenantID()
	source := newSource(t, tenantID, "100.00")
	require.NoError(t, repo.Save(ctx, source))

	err := repo.SubtractFromBalance(ctx, tenantID, source.ID, decimal.RequireFromString("40.00"))
	assert.NoError(t, err)

	found, err := repo.FindByIDForTenant(ctx, tenantID, source.ID)
	require.NoError(t, err)
	assert.True(t, found.RemainingBalance.Equal(decimal.RequireFromString("60.00")))
}

func TestGormFundingSourceRepository_SubtractFromBalance_Insufficient(t *testing.T) {
	db := newSQLiteDB(t, &models.FundingSourceModel{})
	repo := NewGormFundingSourceRepository(db)
	ctx := context.Background()

	tenantID := newTenantID()
	source := newSource(t, tenantID, "100.00")
	require.NoError(t, repo.Save(ctx, source))

	err := repo.SubtractFromBalance(ctx, tenantID, source.ID, decimal.RequireFromString("100.01"))
	assert.ErrorIs(t, err, shared.ErrInsufficientBalance)

	found, err := repo.FindByIDForTenant(ctx, tenantID, source.ID)
	require.NoError(t, err)
	assert.True(t, found.RemainingBalance.Equal(decimal.RequireFromString("100.00")))
}

func TestGormFundingSourceRepository_SubtractFromBalance_MissingSource(t *testing.T) {
	db := newSQLiteDB(t, &models.FundingSourceModel{})
	repo := NewGormFundingSourceRepository(db)

	err := repo.SubtractFromBalance(context.Background(), newTenantID(), uuid.New(), decimal.RequireFromString("10.00"))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormFundingSourceRepository_DeleteForTenant(t *testing.T) {
	db := newSQLiteDB(t, &models.FundingSourceModel{})
	repo := NewGormFundingSourceRepository(db)
	ctx := context.Background()

	tenantID := newTenantID()
	source := newSource(t, tenantID, "100.00")
	require.NoError(t, repo.Save(ctx, source))

	assert.NoError(t, repo.DeleteForTenant(ctx, tenantID, source.ID))
	assert.ErrorIs(t, repo.DeleteForTenant(ctx, tenantID, source.ID), shared.ErrNotFound)
}

func TestGormFundingSourceRepository_ListFiltersByTypeAndStatus(t *testing.T) {
	db := newSQLiteDB(t, &models.FundingSourceModel{})
	repo := NewGormFundingSourceRepository(db)
	ctx := context.Background()

	tenantID := newTenantID()
	loan := newSource(t, tenantID, "100.00")
	require.NoError(t, repo.Save(ctx, loan))

	grant, err := funding.NewFundingSource(tenantID, funding.SourceTypeGrant, "SBA grant", "",
		valueobject.NewMoney(decimal.RequireFromString("500.00")))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, grant))

	loanType := funding.SourceTypeLoan
	filter := funding.SourceFilter{Type: &loanType}
	sources, err := repo.FindAllForTenant(ctx, tenantID, filter)
	assert.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, loan.ID, sources[0].ID)

	count, err := repo.CountForTenant(ctx, tenantID, filter)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// The balance guard must live in the WHERE clause of a single UPDATE so two
// concurrent debits cannot both pass a stale balance check.
func TestGormFundingSourceRepository_SubtractFromBalance_GuardedStatement(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	repo := NewGormFundingSourceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "funding_sources" SET .+ WHERE tenant_id = \$\d+ AND id = \$\d+ AND remaining_balance >= \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.SubtractFromBalance(context.Background(), newTenantID(), uuid.New(), decimal.RequireFromString("10.00"))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
