package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/rente/internal/domain"
	"github.com/Domenick1991/rente/internal/service/bookings"
)

type BookingHandler struct {
	service bookings.BookingUseCase
}

type createBookingRequest struct {
	ListingID int64  `json:"listing_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type bookingResponse struct {
	ID        int64  `json:"id"`
	ListingID int64  `json:"listing_id"`
	TenantID  int64  `json:"tenant_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func NewBookingHandler(service bookings.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	group := router.Group("/bookings", RequireAuth())
	group.GET("", h.list)
	group.POST("", h.create)
	group.POST("/:id/confirm", h.confirm)
	group.POST("/:id/cancel", h.cancel)
}

const dateLayout = "2006-01-02"

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:        b.ID,
		ListingID: b.ListingID,
		TenantID:  b.TenantID,
		StartDate: b.StartDate.Format(dateLayout),
		EndDate:   b.EndDate.Format(dateLayout),
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

func (h *BookingHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toBookingResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return
	}

	booking, err := h.service.Create(c.Request.Context(), currentUser(c), bookings.CreateBookingInput{
		ListingID: req.ListingID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(booking))
}

func (h *BookingHandler) confirm(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}
	booking, err := h.service.Confirm(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}
	booking, err := h.service.Cancel(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booking))
}
