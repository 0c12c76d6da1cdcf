package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/rente/internal/domain"
	"github.com/Domenick1991/rente/internal/service/users"
	"github.com/Domenick1991/rente/internal/token"
)

type AuthHandler struct {
	service       users.UserUseCase
	secureCookies bool
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

func NewAuthHandler(service users.UserUseCase, secureCookies bool) *AuthHandler {
	return &AuthHandler{service: service, secureCookies: secureCookies}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/auth/register", h.register)
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
	router.POST("/token/refresh", h.refresh)
	router.GET("/users", h.listUsers)
	router.GET("/users/me", RequireAuth(), h.me)
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

func (h *AuthHandler) register(c *gin.Context) {
	var req users.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, pair, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{
		"message": "logged in as " + user.Username,
		"user":    toUserResponse(user),
	})
}

func (h *AuthHandler) logout(c *gin.Context) {
	if user := currentUser(c); user != nil {
		if err := h.service.Logout(c.Request.Context(), user); err != nil {
			respondError(c, err)
			return
		}
	}
	h.clearSessionCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) refresh(c *gin.Context) {
	raw, err := c.Cookie("refresh_token")
	if err != nil || raw == "" {
		var req struct {
			Refresh string `json:"refresh"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "refresh token is required"})
			return
		}
		raw = req.Refresh
	}

	pair, err := h.service.Refresh(c.Request.Context(), raw)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{"message": "token refreshed"})
}

func (h *AuthHandler) listUsers(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]userResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toUserResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) me(c *gin.Context) {
	user, err := h.service.GetByID(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) setSessionCookies(c *gin.Context, pair *token.Pair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", pair.Access, int(time.Until(pair.AccessExpires).Seconds()), "/", "", h.secureCookies, true)
	c.SetCookie("refresh_token", pair.Refresh, int(time.Until(pair.RefreshExpires).Seconds()), "/", "", h.secureCookies, true)
}

func (h *AuthHandler) clearSessionCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", "", -1, "/", "", h.secureCookies, true)
	c.SetCookie("refresh_token", "", -1, "/", "", h.secureCookies, true)
}
