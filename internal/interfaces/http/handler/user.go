package handler

import (
	identityapp "github.com/dotmart/backend/internal/application/identity"
	"github.com/dotmart/backend/internal/domain/shared/valueobject"
	"github.com/dotmart/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user account endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create godoc
// @Summary      Sign up
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identityapp.CreateUserRequest true "Account"
// @Success      201 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response "email already exists"
// @Router       /create-user [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req identityapp.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}
	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "User Create Successfully", user)
}

// List godoc
// @Summary      List users, newest first
// @Tags         users
// @Produce      json
// @Param        page  query int false "Page (default 1)"
// @Param        limit query int false "Page size (default 20, max 100)"
// @Success      200 {object} dto.Response{data=identityapp.UserListResponse}
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	var query identityapp.UserListQuery
	if !h.BindQuery(c, &query) {
		return
	}
	users, err := h.userService.ListUsers(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "All users fetched successfully", users)
}

// GetByEmail godoc
// @Summary      Get a user by email
// @Tags         users
// @Produce      json
// @Param        email path string true "Email"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /users/{email} [get]
func (h *UserHandler) GetByEmail(c *gin.Context) {
	email := valueobject.NormalizeEmail(c.Param("email"))
	if !middleware.HasRole(c, adminRole) {
		claims := middleware.GetClaims(c)
		if claims == nil || valueobject.NormalizeEmail(claims.Email) != email {
			h.Forbidden(c)
			return
		}
	}
	user, err := h.userService.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "User fetched successfully", user)
}

// GetByID godoc
// @Summary      Get a user with cart lines populated
// @Tags         users
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200 {object} dto.Response{data=identityapp.UserDetailResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /user/{userId} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := h.PathID(c, "userId", "")
	if !ok || !h.RequireSelfOrAdmin(c, id) {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "User fetched successfully", user)
}

// Update godoc
// @Summary      Update a profile
// @Description  Role and status cannot be changed here. A new password is re-hashed.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userId path string true "User ID"
// @Param        request body identityapp.UpdateUserRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /user/{userId} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c, "userId", "")
	if !ok || !h.RequireSelfOrAdmin(c, id) {
		return
	}
	var req identityapp.UpdateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}
	user, err := h.userService.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "User updated successfully", user)
}

// Block godoc
// @Summary      Block a user and revoke their sessions
// @Tags         users
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      400 {object} dto.Response "already blocked"
// @Failure      403 {object} dto.Response "admins cannot be blocked"
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /user/block/{userId} [put]
func (h *UserHandler) Block(c *gin.Context) {
	id, ok := h.PathID(c, "userId", "")
	if !ok {
		return
	}
	user, err := h.userService.BlockUser(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "User blocked successfully", user)
}

// Unblock godoc
// @Summary      Unblock a user
// @Tags         users
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /user/unblock/{userId} [put]
func (h *UserHandler) Unblock(c *gin.Context) {
	id, ok := h.PathID(c, "userId", "")
	if !ok {
		return
	}
	user, err := h.userService.UnblockUser(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "User unblocked successfully", user)
}

// Delete godoc
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /user/{userId} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.PathID(c, "userId", "")
	if !ok {
		return
	}
	user, err := h.userService.DeleteUser(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "User deleted successfully", user)
}
