package order

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"panedelivery/internal/domain"
	"panedelivery/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterCustomerRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders", h.PlaceOrder)
	rg.GET("/orders", h.MyOrders)
	rg.POST("/orders/:id/cancel", h.Cancel)
}

func (h *Handler) RegisterBakerRoutes(rg *gin.RouterGroup) {
	rg.GET("/bakeries/:id/orders", h.BakeryOrders)
	rg.PATCH("/orders/:id/status", h.UpdateStatus)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order request")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case ErrProductUnavailable:
		response.Error(c, http.StatusConflict, "PRODUCT_UNAVAILABLE", "One or more products are unavailable")
	case ErrInvalidStatusTransition:
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Order status cannot change this way")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.service.PlaceOrder(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"order": o})
}

func (h *Handler) MyOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	orders, err := h.service.MyOrders(c.Request.Context(), c.GetInt64("user_id"), page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) BakeryOrders(c *gin.Context) {
	bakeryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid bakery id")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	orders, err := h.service.BakeryOrders(c.Request.Context(), c.GetInt64("user_id"), bakeryID, page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.service.UpdateStatus(c.Request.Context(), c.GetInt64("user_id"), orderID, domain.OrderStatus(req.Status))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"order": o})
}

func (h *Handler) Cancel(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order id")
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required")
		return
	}

	o, err := h.service.Cancel(c.Request.Context(), c.GetInt64("user_id"), orderID, req.Reason)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"order": o})
}
