package handler

import (
	orderapp "github.com/dotmart/backend/internal/application/order"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles checkout and order administration endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create godoc
// @Summary      Place an order
// @Description  Prices and totals are stored as sent. user defaults to the caller.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body orderapp.CreateOrderRequest true "Order"
// @Success      201 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	actor, ok := h.ActingUser(c)
	if !ok {
		return
	}
	var req orderapp.CreateOrderRequest
	if !h.BindJSON(c, &req) || !h.requireBodyUser(c, req.User) {
		return
	}
	order, err := h.orderService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Order placed successfully", order)
}

// List godoc
// @Summary      List every order, newest first
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response{data=[]orderapp.OrderResponse}
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Orders fetched successfully", orders)
}

// GetByID godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        orderId path string true "Order ID"
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /orders/{orderId} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.PathID(c, "orderId", "")
	if !ok {
		return
	}
	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !h.RequireSelfOrAdmin(c, order.User.ID) {
		return
	}
	h.Success(c, "Order fetched successfully", order)
}

// GetUserOrders godoc
// @Summary      List a user's orders, newest first
// @Tags         orders
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200 {object} dto.Response{data=[]orderapp.OrderResponse}
// @Security     BearerAuth
// @Router       /orders/user/{userId} [get]
func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	userID, ok := h.PathID(c, "userId", "")
	if !ok || !h.RequireSelfOrAdmin(c, userID) {
		return
	}
	orders, err := h.orderService.GetUserOrders(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "User orders fetched successfully", orders)
}

// UpdateOrderStatus godoc
// @Summary      Set the fulfilment status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        orderId path string true "Order ID"
// @Param        request body orderapp.UpdateStatusRequest true "processing, shipped, delivered or cancelled"
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /orders/{orderId}/status [patch]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := h.PathID(c, "orderId", "")
	if !ok {
		return
	}
	var req orderapp.UpdateStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Order status updated successfully", order)
}

// UpdatePaymentStatus godoc
// @Summary      Set the payment status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        orderId path string true "Order ID"
// @Param        request body orderapp.UpdateStatusRequest true "pending, paid or failed"
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /orders/{orderId}/payment [patch]
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	id, ok := h.PathID(c, "orderId", "")
	if !ok {
		return
	}
	var req orderapp.UpdateStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	order, err := h.orderService.UpdatePaymentStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Payment status updated successfully", order)
}
