package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/rente/internal/domain"
	"github.com/Domenick1991/rente/internal/repository"
	"github.com/Domenick1991/rente/internal/service/listings"
)

type ListingHandler struct {
	service listings.ListingUseCase
}

func NewListingHandler(service listings.ListingUseCase) *ListingHandler {
	return &ListingHandler{service: service}
}

func (h *ListingHandler) Register(router *gin.RouterGroup) {
	router.GET("/listings", h.list)
	router.POST("/listings", RequireAuth(), h.create)
	router.GET("/listings/:id", h.get)
	router.PUT("/listings/:id", RequireAuth(), h.update)
	router.DELETE("/listings/:id", RequireAuth(), h.delete)
	router.POST("/listings/:id/view", RequireAuth(), h.recordView)
}

// list composes the filter from the query string. Every parameter is
// optional; malformed numbers are rejected rather than silently dropped.
func (h *ListingHandler) list(c *gin.Context) {
	var filter repository.ListingFilter
	filter.Query = c.Query("q")
	filter.Location = c.Query("location")
	filter.Ordering = c.Query("ordering")

	if v := c.Query("min_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_price"})
			return
		}
		filter.MinPrice = &price
	}
	if v := c.Query("max_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price"})
			return
		}
		filter.MaxPrice = &price
	}
	if v := c.Query("rooms"); v != "" {
		rooms, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rooms"})
			return
		}
		filter.Rooms = &rooms
	}
	if v := c.Query("property_type"); v != "" {
		filter.PropertyType = domain.PropertyType(v)
	}

	list, err := h.service.Search(c.Request.Context(), currentUser(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []domain.Listing{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *ListingHandler) create(c *gin.Context) {
	var req listings.ListingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	listing, err := h.service.Create(c.Request.Context(), currentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, listing)
}

func (h *ListingHandler) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}
	listing, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}
	var req listings.ListingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	listing, err := h.service.Update(c.Request.Context(), currentUser(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}
	if err := h.service.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *ListingHandler) recordView(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}
	if err := h.service.RecordView(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "view recorded"})
}

// pathID parses the :id parameter, writing the 400 itself on failure.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, err
	}
	return id, nil
}
