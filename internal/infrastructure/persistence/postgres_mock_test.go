package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/codops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockGormDB opens GORM on the postgres dialect over a mocked connection
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormWarehouseRepository_FindActiveByCountry_Postgres(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormWarehouseRepository(db)

	id := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "code", "name", "country_code", "active"}).
		AddRow(id, now, now, "KE-NBO", "Nairobi Main", "KE", true)

	mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE country_code = \$1 AND active = \$2 ORDER BY code ASC LIMIT \$3`).
		WithArgs("KE", true, 1).
		WillReturnRows(rows)

	w, err := repo.FindActiveByCountry(context.Background(), "KE")
	require.NoError(t, err)
	assert.Equal(t, id, w.ID)
	assert.Equal(t, "Nairobi Main", w.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductRepository_FindBySKU_Postgres(t *testing.T) {
	t.Run("not found maps to domain error", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE sku = \$1 ORDER BY "products"."id" LIMIT \$2`).
			WithArgs("NOPE", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := NewGormProductRepository(db).FindBySKU(context.Background(), "NOPE")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver errors pass through", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnError(sql.ErrConnDone)

		_, err := NewGormProductRepository(db).FindBySKU(context.Background(), "TK1-FOOT")
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}
