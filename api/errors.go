package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/rente/internal/domain"
	"github.com/Domenick1991/rente/internal/service/users"
	"github.com/Domenick1991/rente/internal/token"
)

// respondError maps the domain failure kinds onto HTTP statuses. Anything
// unrecognized is a 500 with a generic body so internals never leak.
func respondError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErr.Fields})
		return
	}

	if errors.Is(err, domain.ErrUnauthenticated) ||
		errors.Is(err, users.ErrInvalidCredentials) ||
		errors.Is(err, token.ErrInvalidToken) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var accessErr *domain.AccessError
	if errors.As(err, &accessErr) {
		c.JSON(http.StatusForbidden, gin.H{"error": accessErr.Reason})
		return
	}

	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
