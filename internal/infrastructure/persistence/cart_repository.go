package persistence

import (
	"context"
	"time"

	"github.com/dotmart/backend/internal/domain/cart"
	"github.com/dotmart/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCartRepository implements cart.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart line by its ID
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.CartItem, error) {
	var m models.CartItemModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "Cart item")
	}
	return m.ToDomain(), nil
}

// FindByUser returns the user's lines oldest first
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]cart.CartItem, error) {
	var rows []models.CartItemModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]cart.CartItem, 0, len(rows))
	for i := range rows {
		items = append(items, *rows[i].ToDomain())
	}
	return items, nil
}

// AddOrIncrement increments the (user, product) line or inserts it.
// An insert that loses a race against the unique index is retried once as an increment.
func (r *GormCartRepository) AddOrIncrement(ctx context.Context, userID, productID uuid.UUID, quantity int) (*cart.CartItem, error) {
	item, err := r.addOrIncrement(ctx, userID, productID, quantity)
	if isUniqueViolation(err) {
		item, err = r.addOrIncrement(ctx, userID, productID, quantity)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *GormCartRepository) addOrIncrement(ctx context.Context, userID, productID uuid.UUID, quantity int) (*cart.CartItem, error) {
	var m models.CartItemModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.CartItemModel{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Updates(map[string]any{
				"quantity":   gorm.Expr("quantity + ?", quantity),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&m).Error
		}

		item, err := cart.NewCartItem(userID, productID, quantity)
		if err != nil {
			return err
		}
		m.FromDomain(item)
		return tx.Create(&m).Error
	})
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// UpdateQuantity replaces the quantity of a line
func (r *GormCartRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) (*cart.CartItem, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CartItemModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"quantity": quantity, "updated_at": time.Now()})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, notFound(gorm.ErrRecordNotFound, "Cart item")
	}
	return r.FindByID(ctx, id)
}

// Delete removes one line
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CartItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "Cart item")
	}
	return nil
}

// DeleteByUser removes every line of the user
func (r *GormCartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.CartItemModel{}, "user_id = ?", userID)
	return result.RowsAffected, result.Error
}

var _ cart.CartRepository = (*GormCartRepository)(nil)
