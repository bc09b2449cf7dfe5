package persistence

import (
	"context"
	"errors"
	"slices"

	"github.com/dotmart/backend/internal/domain/identity"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var m models.UserModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "User")
	}
	return m.ToDomain(), nil
}

// FindByEmail finds a user by normalized email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var m models.UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, notFound(err, "User")
	}
	return m.ToDomain(), nil
}

// ExistsByEmail checks whether an email is taken
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns one page of users newest first
func (r *GormUserRepository) List(ctx context.Context, page shared.Pagination) ([]identity.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.UserModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	users := make([]identity.User, 0, len(rows))
	for i := range rows {
		users = append(users, *rows[i].ToDomain())
	}
	return users, total, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	var m models.UserModel
	m.FromDomain(user)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return translateError(err, "User", "email", user.Email)
	}
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// Delete hard-deletes a user
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UserModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "User")
	}
	return nil
}

// AddCartItem adds a cart line id to the user's cart list if absent.
// A missing user is a no-op.
func (r *GormUserRepository) AddCartItem(ctx context.Context, userID, cartItemID uuid.UUID) error {
	return r.updateList(ctx, userID, "cart", func(m *models.UserModel) (models.JSONList[uuid.UUID], bool) {
		if slices.Contains(m.Cart, cartItemID) {
			return nil, false
		}
		return append(m.Cart, cartItemID), true
	})
}

// ClearCart empties the user's cart list. A missing user is a no-op.
func (r *GormUserRepository) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return r.updateList(ctx, userID, "cart", func(m *models.UserModel) (models.JSONList[uuid.UUID], bool) {
		return models.JSONList[uuid.UUID]{}, len(m.Cart) > 0
	})
}

// AddOrder appends an order id to the user's order history. A missing user is a no-op.
func (r *GormUserRepository) AddOrder(ctx context.Context, userID, orderID uuid.UUID) error {
	return r.updateList(ctx, userID, "order_history", func(m *models.UserModel) (models.JSONList[uuid.UUID], bool) {
		return append(m.OrderHistory, orderID), true
	})
}

// updateList locks the user row, then rewrites one JSON list column in the same transaction.
// Concurrent appends for one user are serialized by the row lock.
func (r *GormUserRepository) updateList(
	ctx context.Context,
	userID uuid.UUID,
	column string,
	next func(m *models.UserModel) (models.JSONList[uuid.UUID], bool),
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.UserModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "cart", "order_history").
			First(&m, "id = ?", userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		list, changed := next(&m)
		if !changed {
			return nil
		}
		return tx.Model(&models.UserModel{}).Where("id = ?", userID).Update(column, list).Error
	})
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
