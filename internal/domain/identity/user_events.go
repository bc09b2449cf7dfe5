package identity

import (
	"github.com/dotmart/backend/internal/domain/shared"
)

const AggregateTypeUser = "User"

const (
	EventTypeUserCreated   = "user.created"
	EventTypeUserBlocked   = "user.blocked"
	EventTypeUserUnblocked = "user.unblocked"
)

// UserCreatedEvent is published when a user registers
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(u *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, u.ID),
		Email:           u.Email,
		Role:            u.Role,
	}
}

// UserBlockedEvent is published when a user is blocked
type UserBlockedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserBlockedEvent creates a new UserBlockedEvent
func NewUserBlockedEvent(u *User) *UserBlockedEvent {
	return &UserBlockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserBlocked, AggregateTypeUser, u.ID),
		Email:           u.Email,
	}
}

// UserUnblockedEvent is published when a user is unblocked
type UserUnblockedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserUnblockedEvent creates a new UserUnblockedEvent
func NewUserUnblockedEvent(u *User) *UserUnblockedEvent {
	return &UserUnblockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserUnblocked, AggregateTypeUser, u.ID),
		Email:           u.Email,
	}
}
