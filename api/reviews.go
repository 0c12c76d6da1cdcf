package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/rente/internal/domain"
	"github.com/Domenick1991/rente/internal/service/reviews"
)

// ReviewHandler serves the review collection nested under a listing. The
// listing always comes from the path, never from the body.
type ReviewHandler struct {
	service reviews.ReviewUseCase
}

func NewReviewHandler(service reviews.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) Register(router *gin.RouterGroup) {
	router.GET("/listings/:id/reviews", h.list)
	router.POST("/listings/:id/reviews", RequireAuth(), h.create)
}

func (h *ReviewHandler) list(c *gin.Context) {
	listingID, err := pathID(c)
	if err != nil {
		return
	}
	list, err := h.service.ListByListing(c.Request.Context(), listingID)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []domain.Review{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *ReviewHandler) create(c *gin.Context) {
	listingID, err := pathID(c)
	if err != nil {
		return
	}
	var req reviews.CreateReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	review, err := h.service.Create(c.Request.Context(), currentUser(c), listingID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
