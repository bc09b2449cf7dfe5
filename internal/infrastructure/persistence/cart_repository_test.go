package persistence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestGormCartRepository_AddOrIncrement(t *testing.T) {
	ctx := context.Background()

	t.Run("same pair twice yields one line with summed quantity", func(t *testing.T) {
		repo := NewGormCartRepository(newTestDB(t))
		userID, productID := uuid.New(), uuid.New()

		first, err := repo.AddOrIncrement(ctx, userID, productID, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, first.Quantity)

		second, err := repo.AddOrIncrement(ctx, userID, productID, 3)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 5, second.Quantity)

		lines, err := repo.FindByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 5, lines[0].Quantity)
	})

	t.Run("different products get separate lines", func(t *testing.T) {
		repo := NewGormCartRepository(newTestDB(t))
		userID := uuid.New()

		_, err := repo.AddOrIncrement(ctx, userID, uuid.New(), 1)
		require.NoError(t, err)
		_, err = repo.AddOrIncrement(ctx, userID, uuid.New(), 1)
		require.NoError(t, err)

		lines, err := repo.FindByUser(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, lines, 2)
	})

	t.Run("concurrent adds never duplicate the line", func(t *testing.T) {
		repo := NewGormCartRepository(newTestDB(t))
		userID, productID := uuid.New(), uuid.New()

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.AddOrIncrement(ctx, userID, productID, 1)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		lines, err := repo.FindByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 5, lines[0].Quantity)
	})

	t.Run("rejects non-positive quantity on insert", func(t *testing.T) {
		repo := NewGormCartRepository(newTestDB(t))
		_, err := repo.AddOrIncrement(ctx, uuid.New(), uuid.New(), 0)
		require.Error(t, err)
		assert.EqualError(t, err, "Quantity must be at least 1")
	})
}

func TestGormCartRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCartRepository(newTestDB(t))
	userID := uuid.New()

	line, err := repo.AddOrIncrement(ctx, userID, uuid.New(), 1)
	require.NoError(t, err)
	_, err = repo.AddOrIncrement(ctx, userID, uuid.New(), 4)
	require.NoError(t, err)

	updated, err := repo.UpdateQuantity(ctx, line.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	_, err = repo.UpdateQuantity(ctx, uuid.New(), 2)
	assert.EqualError(t, err, "Cart item not found")

	require.NoError(t, repo.Delete(ctx, line.ID))
	assert.True(t, shared.IsNotFound(repo.Delete(ctx, line.ID)))

	removed, err := repo.DeleteByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	removed, err = repo.DeleteByUser(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestGormCartRepository_IncrementSQL(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	repo := NewGormCartRepository(gormDB)

	userID, productID, lineID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cart_items" SET "quantity"=quantity \+ \$1,"updated_at"=\$2 WHERE user_id = \$3 AND product_id = \$4`).
		WithArgs(3, sqlmock.AnyArg(), userID, productID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "cart_items" WHERE user_id = \$1 AND product_id = \$2 ORDER BY .* LIMIT .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "user_id", "product_id", "quantity"}).
			AddRow(lineID.String(), now, now, userID.String(), productID.String(), 5))
	mock.ExpectCommit()

	line, err := repo.AddOrIncrement(context.Background(), userID, productID, 3)
	require.NoError(t, err)
	assert.Equal(t, lineID, line.ID)
	assert.Equal(t, 5, line.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}
