package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/nodefoundry/depinmarket/internal/domain/errors"
	"github.com/nodefoundry/depinmarket/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// abortWithDomainError maps domain sentinels onto HTTP statuses shared
// by most endpoints. Handlers pre-empt specific mappings before calling it.
func abortWithDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotAuthorized):
		c.Status(http.StatusForbidden)
	case errors.Is(err, domainErrors.ErrOrderNotFound), errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrInvalidAmount),
		errors.Is(err, domainErrors.ErrInvalidInput),
		errors.Is(err, domainErrors.ErrInvalidResource):
		c.Status(http.StatusUnprocessableEntity)
	case errors.Is(err, domainErrors.ErrInsufficientBalance):
		c.Status(http.StatusPaymentRequired)
	case errors.Is(err, domainErrors.ErrInvalidStatus),
		errors.Is(err, domainErrors.ErrAlreadyInitialized),
		errors.Is(err, domainErrors.ErrAlreadyExists):
		c.Status(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrNotConfigured),
		errors.Is(err, domainErrors.ErrNotInitialized):
		c.Status(http.StatusServiceUnavailable)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
