package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/rente/internal/domain"
	"github.com/Domenick1991/rente/internal/service/history"
)

type HistoryHandler struct {
	service history.HistoryUseCase
}

func NewHistoryHandler(service history.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{service: service}
}

func (h *HistoryHandler) Register(router *gin.RouterGroup) {
	router.GET("/views", RequireAuth(), h.views)
	router.GET("/searches", RequireAuth(), h.searches)
}

func (h *HistoryHandler) views(c *gin.Context) {
	list, err := h.service.ListViews(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []domain.ViewHistory{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *HistoryHandler) searches(c *gin.Context) {
	list, err := h.service.ListSearches(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []domain.SearchHistory{}
	}
	c.JSON(http.StatusOK, list)
}
