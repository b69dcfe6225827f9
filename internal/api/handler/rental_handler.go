package handler

import (
	"context"
	"net/http"
	"time"

	"bookrental/internal/api/dto"
	"bookrental/internal/api/middleware"
	"bookrental/internal/api/service"

	"github.com/gin-gonic/gin"
)

type RentalHandler struct {
	rentalService service.RentalService
}

func NewRentalHandler(rentalService service.RentalService) *RentalHandler {
	return &RentalHandler{rentalService: rentalService}
}

// RegisterRoutes registers reservation routes; all behind auth, the full
// listing additionally behind the manager role
func (h *RentalHandler) RegisterRoutes(router *gin.RouterGroup) {
	rentals := router.Group("/rentals")
	{
		rentals.POST("", h.Create)
		rentals.GET("/me", h.Mine)
		rentals.POST("/:rental_id/cancel", h.Cancel)
		rentals.POST("/:rental_id/finish", h.Finish)
		rentals.POST("/:rental_id/rate", h.Rate)

		rentals.GET("", middleware.RequireManager(), h.ListAll)
	}
}

// Create reserves a book for a date range
// POST /api/rentals
func (h *RentalHandler) Create(c *gin.Context) {
	var req dto.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse(dateLayout, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time, expected " + dateLayout})
		return
	}
	end, err := time.Parse(dateLayout, req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_time, expected " + dateLayout})
		return
	}

	reservation, err := h.rentalService.CreateReservation(
		c.Request.Context(), middleware.CallerID(c), req.BookID, req.UserID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// Mine returns the caller's reservations split into active and past
// GET /api/rentals/me
func (h *RentalHandler) Mine(c *gin.Context) {
	reservations, err := h.rentalService.ReservationsForUser(middleware.CallerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// ListAll returns every user's reservations (manager only)
// GET /api/rentals
func (h *RentalHandler) ListAll(c *gin.Context) {
	reservations, err := h.rentalService.AllReservations(middleware.CallerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// Cancel transitions a reserved rental to cancelled
// POST /api/rentals/:rental_id/cancel
func (h *RentalHandler) Cancel(c *gin.Context) {
	err := h.rentalService.CancelReservation(
		c.Request.Context(), middleware.CallerID(c), c.Param("rental_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Finish closes out an active reservation with a rating
// POST /api/rentals/:rental_id/finish
func (h *RentalHandler) Finish(c *gin.Context) {
	h.applyRating(c, h.rentalService.FinishReservation)
}

// Rate rates a reservation whose stay already elapsed
// POST /api/rentals/:rental_id/rate
func (h *RentalHandler) Rate(c *gin.Context) {
	h.applyRating(c, h.rentalService.RateReservation)
}

func (h *RentalHandler) applyRating(
	c *gin.Context,
	op func(ctx context.Context, callerID, rentalID, bookID string, rating int) error,
) {
	var req dto.RateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := op(c.Request.Context(), middleware.CallerID(c), c.Param("rental_id"), req.BookID, *req.Rating)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
