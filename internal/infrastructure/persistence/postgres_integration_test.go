//go:build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/codops/backend/internal/domain/finance"
	"github.com/codops/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newPostgresDatabase starts a throwaway PostgreSQL container and migrates it
func newPostgresDatabase(t *testing.T) *Database {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("cod_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	database := &Database{DB: db, Driver: config.DriverPostgres}
	require.NoError(t, database.AutoMigrate())
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestPostgres_SeedAndUpserts(t *testing.T) {
	db := newPostgresDatabase(t).DB
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db, true, zaptest.NewLogger(t)))

	spend := NewGormPlatformSpendRepository(db)
	first := newSpend(t, "TK1-FOOT", "facebook", "KE", 20)
	require.NoError(t, spend.Upsert(ctx, first))
	again := newSpend(t, "TK1-FOOT", "facebook", "KE", 35)
	require.NoError(t, spend.Upsert(ctx, again))
	assert.Equal(t, first.ID, again.ID)

	rows, err := spend.FindBySKU(ctx, "TK1-FOOT")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, decimal.NewFromInt(35).Equal(rows[0].Amount))

	remits := NewGormPeriodRemitRepository(db)
	require.NoError(t, remits.Save(ctx, newRemit(t, "KE", "TK1-FOOT", 1, 50)))
	require.NoError(t, remits.Save(ctx, newRemit(t, "KE", "GLS-TRIM", 1, 500)))

	report, err := remits.Find(ctx, finance.RemitFilter{CountryCode: "KE"})
	require.NoError(t, err)
	require.Len(t, report, 2)
	assert.Equal(t, "GLS-TRIM", report[0].SKU, "profit descending on NUMERIC columns")
}

func TestPostgres_DeleteBySKUCascades(t *testing.T) {
	db := newPostgresDatabase(t).DB
	ctx := context.Background()

	saveProduct(t, db, "TK1-FOOT")
	require.NoError(t, NewGormPlatformSpendRepository(db).Upsert(ctx, newSpend(t, "TK1-FOOT", "tiktok", "KE", 3)))
	require.NoError(t, NewGormPeriodRemitRepository(db).Save(ctx, newRemit(t, "KE", "TK1-FOOT", 2, 90)))

	require.NoError(t, NewGormProductRepository(db).DeleteBySKU(ctx, "TK1-FOOT"))

	left, err := NewGormPlatformSpendRepository(db).FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)
	remits, err := NewGormPeriodRemitRepository(db).Find(ctx, finance.RemitFilter{})
	require.NoError(t, err)
	assert.Empty(t, remits)
}
