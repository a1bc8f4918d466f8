package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/agencydesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockOrderRepository creates a GormOrderRepository with a mocked SQL connection
func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormOrderRepository(gormDB), mock, mockDB
}

func TestGormOrderRepository_UpdateDocument(t *testing.T) {
	t.Run("writes the document reference columns", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "orders" SET "document_key"=\$1,"document_url"=\$2,"updated_at"=\$3 WHERE id = \$4`).
			WithArgs("documents/invoice_1_1756500000.pdf", "https://files.test/documents/invoice_1_1756500000.pdf", sqlmock.AnyArg(), 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateDocument(context.Background(), 1,
			"documents/invoice_1_1756500000.pdf",
			"https://files.test/documents/invoice_1_1756500000.pdf")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing order to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "orders" SET "document_key"=\$1,"document_url"=\$2,"updated_at"=\$3 WHERE id = \$4`).
			WithArgs("documents/invoice_42_1756500000.pdf", "https://files.test/documents/invoice_42_1756500000.pdf", sqlmock.AnyArg(), 42).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateDocument(context.Background(), 42,
			"documents/invoice_42_1756500000.pdf",
			"https://files.test/documents/invoice_42_1756500000.pdf")

		require.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
