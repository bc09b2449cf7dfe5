package identity

import (
	"context"

	"github.com/dotmart/backend/internal/domain/cart"
	"github.com/dotmart/backend/internal/domain/catalog"
	"github.com/dotmart/backend/internal/domain/identity"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/domain/shared/valueobject"
	"github.com/dotmart/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionRevoker invalidates every token issued to a user
type SessionRevoker interface {
	RevokeUser(ctx context.Context, userID uuid.UUID) error
}

// UserService handles account registration and administration
type UserService struct {
	userRepo       identity.UserRepository
	cartRepo       cart.CartRepository
	productRepo    catalog.ProductRepository
	hasher         identity.PasswordHasher
	revoker        SessionRevoker
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewUserService creates a new UserService. revoker may be nil when sessions are not revocable.
func NewUserService(
	userRepo identity.UserRepository,
	cartRepo cart.CartRepository,
	productRepo catalog.ProductRepository,
	hasher identity.PasswordHasher,
	revoker SessionRevoker,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *UserService {
	if eventPublisher == nil {
		eventPublisher = shared.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		userRepo:       userRepo,
		cartRepo:       cartRepo,
		productRepo:    productRepo,
		hasher:         hasher,
		revoker:        revoker,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// CreateUser registers a USER account
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "user", "create")
	defer span.End()

	email := valueobject.NormalizeEmail(req.Email)
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if exists {
		return nil, shared.Duplicate("email", email)
	}

	user, err := identity.NewUser(identity.Profile{
		Name:        req.Name,
		Email:       email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		PhotoURL:    req.PhotoURL,
	}, s.hasher)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrUserID, user.ID.String())
	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	s.publish(ctx, user)

	resp := ToUserResponse(user)
	return &resp, nil
}

// ListUsers returns one page of users newest first
func (s *UserService) ListUsers(ctx context.Context, q UserListQuery) (*UserListResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "user", "list")
	defer span.End()

	page := shared.NewPagination(q.Page, q.Limit)
	users, total, err := s.userRepo.List(ctx, page)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	data := make([]UserResponse, len(users))
	for i := range users {
		data[i] = ToUserResponse(&users[i])
	}
	return &UserListResponse{
		Meta: UserListMeta{
			Page:       page.Page,
			Limit:      page.Limit,
			Skip:       page.Offset(),
			Total:      total,
			TotalPages: page.TotalPages(total),
		},
		Data: data,
	}, nil
}

// GetUserByID returns the profile with its cart lines and their products resolved.
// Stale cart references are dropped.
func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*UserDetailResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "user", "get",
		telemetry.WithAttribute(telemetry.SpanAttrUserID, id.String()))
	defer span.End()

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.populateCart(ctx, user)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return &UserDetailResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PhoneNumber:  user.PhoneNumber,
		PhotoURL:     user.PhotoURL,
		Role:         string(user.Role),
		UserStatus:   string(user.Status),
		Cart:         lines,
		OrderHistory: nonNilIDs(user.OrderHistory),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}, nil
}

// GetUserByEmail returns the user registered under email
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*UserResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "user", "get_by_email")
	defer span.End()

	user, err := s.userRepo.FindByEmail(ctx, valueobject.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// UpdateUser applies a partial profile update. Email changes keep addresses unique.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "user", "update",
		telemetry.WithAttribute(telemetry.SpanAttrUserID, id.String()))
	defer span.End()

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := valueobject.NormalizeEmail(*req.Email)
		if email != user.Email {
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.Duplicate("email", email)
			}
		}
	}

	if err := user.ApplyPatch(identity.ProfilePatch{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		PhotoURL:    req.PhotoURL,
	}, s.hasher); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// DeleteUser removes the account and returns it. Cart lines and orders are kept.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "user", "delete",
		telemetry.WithAttribute(telemetry.SpanAttrUserID, id.String()))
	defer span.End()

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.revokeSessions(ctx, id)

	resp := ToUserResponse(user)
	return &resp, nil
}

// BlockUser deactivates a non-admin account and revokes its outstanding tokens
func (s *UserService) BlockUser(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "user", "block",
		telemetry.WithAttribute(telemetry.SpanAttrUserID, id.String()))
	defer span.End()

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Block(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.revokeSessions(ctx, id)
	s.logger.Info("user blocked", zap.String("user_id", id.String()))
	s.publish(ctx, user)

	resp := ToUserResponse(user)
	return &resp, nil
}

// UnblockUser reactivates an account
func (s *UserService) UnblockUser(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "user", "unblock",
		telemetry.WithAttribute(telemetry.SpanAttrUserID, id.String()))
	defer span.End()

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Unblock()
	if err := s.userRepo.Save(ctx, user); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("user unblocked", zap.String("user_id", id.String()))
	s.publish(ctx, user)

	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *UserService) populateCart(ctx context.Context, user *identity.User) ([]UserCartLine, error) {
	out := make([]UserCartLine, 0, len(user.Cart))
	if len(user.Cart) == 0 {
		return out, nil
	}

	items, err := s.cartRepo.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*cart.CartItem, len(items))
	productIDs := make([]uuid.UUID, 0, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
		productIDs = append(productIDs, items[i].ProductID)
	}

	products := make(map[uuid.UUID]*catalog.Product)
	if len(productIDs) > 0 {
		found, err := s.productRepo.FindByIDs(ctx, productIDs)
		if err != nil {
			return nil, err
		}
		for i := range found {
			products[found[i].ID] = &found[i]
		}
	}

	for _, id := range user.Cart {
		item, ok := byID[id]
		if !ok {
			continue
		}
		line := UserCartLine{ID: item.ID, Quantity: item.Quantity}
		if p, ok := products[item.ProductID]; ok {
			line.Product = &UserCartProduct{
				ID:     p.ID,
				Name:   p.Name,
				Images: p.Images,
				Price:  p.Price.InexactFloat64(),
				Stock:  p.Stock,
			}
		}
		out = append(out, line)
	}
	return out, nil
}

func (s *UserService) revokeSessions(ctx context.Context, id uuid.UUID) {
	if s.revoker == nil {
		return
	}
	if err := s.revoker.RevokeUser(ctx, id); err != nil {
		s.logger.Warn("failed to revoke user sessions", zap.String("user_id", id.String()), zap.Error(err))
	}
}

func (s *UserService) publish(ctx context.Context, user *identity.User) {
	events := user.PullDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish user events",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}
}
