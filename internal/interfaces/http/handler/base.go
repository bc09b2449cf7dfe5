// Package handler contains the gin handlers of the storefront REST API.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dotmart/backend/internal/domain/identity"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/infrastructure/logger"
	"github.com/dotmart/backend/internal/interfaces/http/dto"
	"github.com/dotmart/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const adminRole = string(identity.RoleAdmin)

const (
	msgInvalidID     = "Invalid ID format"
	msgNoPermission  = "You do not have permission to access this resource"
	msgNotAuthorized = "You are not authorized!"
	msgInternalError = "Internal Server Error"
	msgMalformedBody = "Malformed JSON request body"
	msgBodyRequired  = "Request body is required"
	msgBodyTooLarge  = "Request body exceeds maximum allowed size"
)

// BaseHandler provides the response and binding helpers shared by every handler
type BaseHandler struct{}

// Success sends a 200 envelope
func (h *BaseHandler) Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(message, data))
}

// Created sends a 201 envelope
func (h *BaseHandler) Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(message, data))
}

// Error sends an error envelope with an explicit status
func (h *BaseHandler) Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// Forbidden sends a 403 envelope
func (h *BaseHandler) Forbidden(c *gin.Context) {
	h.Error(c, http.StatusForbidden, dto.ErrCodeForbidden, msgNoPermission)
}

// HandleError renders err. Domain errors map through their code; invalid ids
// and duplicates carry errorDetails. Anything else is a 500 whose message is
// hidden in release mode.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID := middleware.GetRequestID(c)

	var de *shared.DomainError
	if errors.As(err, &de) {
		code := dto.NormalizeErrorCode(de.Code)
		resp := dto.NewErrorResponseWithRequestID(code, de.Message, requestID)
		switch code {
		case dto.ErrCodeInvalidID:
			resp.ErrorDetails = dto.InvalidIDDetails{Path: de.Field, Value: de.Value}
		case dto.ErrCodeAlreadyExists:
			if de.Field != "" {
				resp.ErrorDetails = dto.DuplicateDetails{Field: de.Field, Value: de.Value}
			}
		}
		c.JSON(dto.GetHTTPStatus(code), resp)
		return
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, msgBodyTooLarge)
		return
	}

	logger.L(c.Request.Context()).Error("unhandled request error", zap.Error(err))
	_ = c.Error(err)
	message := err.Error()
	if gin.Mode() == gin.ReleaseMode {
		message = msgInternalError
	}
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// BindJSON binds and validates the body into obj. On failure it writes the
// response and returns false.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.handleBindError(c, err)
		return false
	}
	return true
}

// BindQuery binds and validates the query string into obj
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.handleBindError(c, err)
		return false
	}
	return true
}

func (h *BaseHandler) handleBindError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(requestID, middleware.FormatValidationErrors(verrs)))
	case errors.As(err, &typeErr):
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(requestID, []dto.Issue{{
			Path:    typeErr.Field,
			Message: "Expected " + typeErr.Type.String() + ", received " + typeErr.Value,
		}}))
	case errors.As(err, &tooLarge):
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, msgBodyTooLarge)
	case errors.Is(err, io.EOF):
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, msgBodyRequired)
	default:
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, msgMalformedBody)
	}
}

// PathID parses the named path parameter. On failure it writes a 400 with
// message, or "Invalid ID format" when message is empty, and returns false.
func (h *BaseHandler) PathID(c *gin.Context, param, message string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		if message == "" {
			message = msgInvalidID
		}
		resp := dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidID, message, middleware.GetRequestID(c))
		resp.ErrorDetails = dto.InvalidIDDetails{Path: param, Value: raw}
		c.JSON(http.StatusBadRequest, resp)
		return uuid.Nil, false
	}
	return id, true
}

// ActingUser returns the authenticated subject, writing a 401 when absent
func (h *BaseHandler) ActingUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, msgNotAuthorized)
		return uuid.Nil, false
	}
	return id, true
}

// RequireSelfOrAdmin lets admins through and otherwise requires the
// authenticated subject to be userID. It writes a 403 on refusal.
func (h *BaseHandler) RequireSelfOrAdmin(c *gin.Context, userID uuid.UUID) bool {
	if middleware.HasRole(c, adminRole) {
		return true
	}
	self, ok := h.ActingUser(c)
	if !ok {
		return false
	}
	if self != userID {
		h.Forbidden(c)
		return false
	}
	return true
}

// requireBodyUser applies RequireSelfOrAdmin to an optional user id taken from
// a request body. Empty and malformed ids pass; the service rejects the latter.
func (h *BaseHandler) requireBodyUser(c *gin.Context, raw string) bool {
	if raw == "" {
		return true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return true
	}
	return h.RequireSelfOrAdmin(c, id)
}
