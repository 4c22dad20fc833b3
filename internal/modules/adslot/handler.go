package adslot

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"panedelivery/internal/domain"
	"panedelivery/internal/pkg/response"
	"panedelivery/internal/ws"
)

type Handler struct {
	service *Service
	display *DisplayService
	hub     *ws.Hub
	log     *logrus.Logger

	upgrader websocket.Upgrader
}

func NewHandler(service *Service, display *DisplayService, hub *ws.Hub, log *logrus.Logger) *Handler {
	return &Handler{
		service: service,
		display: display,
		hub:     hub,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/display/:page", h.Display)
	rg.GET("/ads/:id/click", h.Click)
}

func (h *Handler) RegisterSponsorRoutes(rg *gin.RouterGroup) {
	rg.GET("/ad-spaces", h.ListSpaces)
	rg.GET("/ad-spaces/:id/agenda", h.Agenda)
	rg.GET("/ad-spaces/:id/feed", h.Feed)
	rg.POST("/ad-spaces/:id/slots/toggle", h.ToggleSlot)
	rg.POST("/ad-spaces/:id/purchase", h.Purchase)
	rg.POST("/ad-spaces/:id/content", h.SubmitContent)
	rg.GET("/my/bookings", h.MyBookings)
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
	case ErrSlotConflict:
		response.Error(c, http.StatusConflict, "SLOT_CONFLICT", "Slot is already taken, refresh the agenda")
	case ErrNoValidSlots:
		response.Error(c, http.StatusConflict, "NO_VALID_SLOTS", "No reserved slots to purchase")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this booking")
	case ErrSlotState:
		response.Error(c, http.StatusConflict, "SLOT_STATE", "Booking is not editable in its current state")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}

func (h *Handler) ListSpaces(c *gin.Context) {
	spaces, err := h.service.ListSpaces(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ad_spaces": spaces})
}

func (h *Handler) Agenda(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	date := c.DefaultQuery("date", time.Now().UTC().Format("2006-01-02"))
	agenda, err := h.service.Agenda(c.Request.Context(), id, date, c.GetInt64("user_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, agenda)
}

func (h *Handler) ToggleSlot(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ToggleSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.ToggleSlot(c.Request.Context(), id, req.SlotKey, c.GetInt64("user_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Purchase(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	count, err := h.service.Purchase(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"purchased_slots": count})
}

func (h *Handler) SubmitContent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req SubmitContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.SubmitContent(c.Request.Context(), id, c.GetInt64("user_id"), req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": string(domain.SlotProcessing)})
}

func (h *Handler) MyBookings(c *gin.Context) {
	bookings, err := h.service.MyBookings(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

// Feed upgrades the request to a websocket and streams slot updates for
// one ad space until the client disconnects.
func (h *Handler) Feed(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	h.hub.ServeWS(id, conn)
}

func (h *Handler) Display(c *gin.Context) {
	page := c.Param("page")
	if page == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing page")
		return
	}

	cards, err := h.display.ResolveDisplay(c.Request.Context(), page)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cards": cards})
}

func (h *Handler) Click(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.display.RecordClick(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"recorded": true})
}
