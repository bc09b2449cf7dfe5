package persistence

import (
	"context"

	"github.com/dotmart/backend/internal/domain/order"
	"github.com/dotmart/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var m models.OrderModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "Order")
	}
	return m.ToDomain(), nil
}

// FindAll returns every order newest first
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]order.Order, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindByUser returns the user's orders newest first
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *GormOrderRepository) find(tx *gorm.DB) ([]order.Order, error) {
	var rows []models.OrderModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]order.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, *rows[i].ToDomain())
	}
	return orders, nil
}

// Create inserts a new order
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	var m models.OrderModel
	m.FromDomain(o)
	return r.db.WithContext(ctx).Create(&m).Error
}

// UpdateStatuses writes the payment and order status columns only
func (r *GormOrderRepository) UpdateStatuses(ctx context.Context, o *order.Order) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", o.ID).
		Updates(map[string]any{
			"payment_status": o.PaymentStatus,
			"order_status":   o.OrderStatus,
			"updated_at":     o.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "Order")
	}
	return nil
}

var _ order.OrderRepository = (*GormOrderRepository)(nil)
