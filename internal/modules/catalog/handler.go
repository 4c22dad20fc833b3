package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"panedelivery/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/bakeries", h.ListBakeries)
	rg.GET("/bakeries/:id", h.GetBakery)
	rg.GET("/bakeries/:id/products", h.ListProducts)
}

func (h *Handler) RegisterBakerRoutes(rg *gin.RouterGroup) {
	rg.POST("/bakeries", h.CreateBakery)
	rg.PUT("/bakeries/:id", h.UpdateBakery)
	rg.POST("/bakeries/:id/products", h.CreateProduct)
	rg.PUT("/products/:id", h.UpdateProduct)
	rg.DELETE("/products/:id", h.DeleteProduct)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this resource")
	case ErrNotVerified:
		response.Error(c, http.StatusForbidden, "NOT_VERIFIED", "Baker profile is not verified yet")
	case ErrBakeryExists:
		response.Error(c, http.StatusConflict, "BAKERY_EXISTS", "Baker already has a bakery")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid fields")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}

func (h *Handler) ListBakeries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	bakeries, total, err := h.service.ListBakeries(c.Request.Context(), c.Query("city"), page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"bakeries": bakeries,
		"total":    total,
		"page":     page,
	})
}

func (h *Handler) GetBakery(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	bakery, err := h.service.GetBakery(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bakery": bakery})
}

func (h *Handler) ListProducts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	products, err := h.service.ListProducts(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"products": products})
}

func (h *Handler) CreateBakery(c *gin.Context) {
	var req CreateBakeryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	bakery, err := h.service.CreateBakery(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"bakery": bakery})
}

func (h *Handler) UpdateBakery(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateBakeryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	bakery, err := h.service.UpdateBakery(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bakery": bakery})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"product": product})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"product": product})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
