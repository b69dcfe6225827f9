package handler

import (
	"errors"
	"net/http"

	"bookrental/internal/api/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps business-layer validation errors onto HTTP
// statuses. The old UI swallowed every rejection; surfacing the reason here
// is an API-layer choice, clients are free to keep rendering it silently.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, service.ErrNotAvailable),
		errors.Is(err, service.ErrNotReserved),
		errors.Is(err, service.ErrAlreadyRated):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrRatingOutOfRange):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "try again later"})
	}
}
