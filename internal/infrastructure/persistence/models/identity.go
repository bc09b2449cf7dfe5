package models

import (
	"github.com/dotmart/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// UserModel is the persistence model for the User aggregate.
type UserModel struct {
	BaseModel
	Name         string              `gorm:"type:varchar(50);not null"`
	Email        string              `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	PasswordHash string              `gorm:"type:varchar(255);not null"`
	PhoneNumber  string              `gorm:"type:varchar(15);not null"`
	PhotoURL     string              `gorm:"type:text;not null"`
	Role         identity.Role       `gorm:"type:varchar(10);not null;default:'USER'"`
	UserStatus   identity.Status     `gorm:"type:varchar(10);not null;default:'ACTIVE'"`
	Cart         JSONList[uuid.UUID] `gorm:"not null"`
	OrderHistory JSONList[uuid.UUID] `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.aggregateRoot(),
		Name:              m.Name,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		PhoneNumber:       m.PhoneNumber,
		PhotoURL:          m.PhotoURL,
		Role:              m.Role,
		Status:            m.UserStatus,
		Cart:              []uuid.UUID(m.Cart),
		OrderHistory:      []uuid.UUID(m.OrderHistory),
	}
}

// FromDomain populates the persistence model from a domain User.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Name = u.Name
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.PhoneNumber = u.PhoneNumber
	m.PhotoURL = u.PhotoURL
	m.Role = u.Role
	m.UserStatus = u.Status
	m.Cart = JSONList[uuid.UUID](u.Cart)
	m.OrderHistory = JSONList[uuid.UUID](u.OrderHistory)
}
