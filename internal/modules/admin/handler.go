package admin

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/verifications", h.PendingVerifications)
	rg.POST("/verifications/:id/approve", h.VerifyProfile)
	rg.POST("/verifications/:id/reject", h.RejectProfile)
	rg.GET("/review-queue", h.ReviewQueue)
	rg.POST("/review-queue/approve", h.ApproveBooking)
	rg.POST("/review-queue/reject", h.RejectBooking)
	rg.GET("/statistics", h.PlatformStatistics)
	rg.GET("/ad-spaces/:id/statistics", h.SpaceStatistics)
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
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case ErrSlotConflict:
		response.Error(c, http.StatusConflict, "SLOT_CONFLICT", "Booking changed, reload the queue")
	case ErrSlotState:
		response.Error(c, http.StatusConflict, "SLOT_STATE", "Booking is not awaiting review")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}

func (h *Handler) PendingVerifications(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	queue, err := h.service.PendingVerifications(c.Request.Context(), page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, queue)
}

func (h *Handler) VerifyProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.VerifyProfile(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"verified": true})
}

func (h *Handler) RejectProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req RejectProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.RejectProfile(c.Request.Context(), id, req.Reason); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rejected": true})
}

func (h *Handler) ReviewQueue(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, total, err := h.service.ReviewQueue(c.Request.Context(), page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"bookings": items,
		"total":    total,
		"page":     page,
	})
}

func (h *Handler) ApproveBooking(c *gin.Context) {
	var req ReviewBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ApproveBooking(c.Request.Context(), c.GetInt64("user_id"), req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"approved": true})
}

func (h *Handler) RejectBooking(c *gin.Context) {
	var req ReviewBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.RejectBooking(c.Request.Context(), c.GetInt64("user_id"), req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rejected": true})
}

func (h *Handler) PlatformStatistics(c *gin.Context) {
	counts, err := h.service.PlatformStatistics(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, counts)
}

func (h *Handler) SpaceStatistics(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	stats, err := h.service.SpaceStatistics(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
