package persistence

import (
	"context"
	"testing"

	"github.com/dotmart/backend/internal/domain/catalog"
	"github.com/dotmart/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a migrated in-memory SQLite database.
// One connection keeps every query on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hashed:" + pw, nil }
func (plainHasher) Compare(hash, pw string) bool  { return hash == "hashed:"+pw }

func seedCategory(t *testing.T, repo *GormCategoryRepository, name string) *catalog.Category {
	t.Helper()
	c, err := catalog.NewCategory(name, "https://cdn.example.com/"+uuid.NewString()+".png")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}

func seedProduct(t *testing.T, repo *GormProductRepository, categoryID uuid.UUID, name, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductDetails{
		Name:          name,
		Description:   name + " description",
		CategoryID:    categoryID,
		Price:         decimal.RequireFromString(price),
		OriginalPrice: decimal.RequireFromString(price).Mul(decimal.NewFromInt(2)),
		Images:        []string{"https://cdn.example.com/p.png"},
		Stock:         true,
		Meta:          catalog.Meta{Title: name, Description: name, Keywords: []string{"gift"}},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

func seedUserModel(t *testing.T, email string) *identity.User {
	t.Helper()
	u, err := identity.NewUser(identity.Profile{
		Name:        "Jane Doe",
		Email:       email,
		Password:    "secret123",
		PhoneNumber: "01312116844",
	}, plainHasher{})
	require.NoError(t, err)
	return u
}

func seedUser(t *testing.T, repo *GormUserRepository, email string) *identity.User {
	t.Helper()
	u := seedUserModel(t, email)
	require.NoError(t, repo.Save(context.Background(), u))
	return u
}
