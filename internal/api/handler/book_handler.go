package handler

import (
	"net/http"
	"time"

	"bookrental/internal/api/dto"
	"bookrental/internal/api/middleware"
	"bookrental/internal/api/service"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type BookHandler struct {
	bookService service.BookService
}

func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// RegisterRoutes registers book-related routes; the group is already
// behind the auth middleware, writes additionally require the manager role
func (h *BookHandler) RegisterRoutes(router *gin.RouterGroup) {
	books := router.Group("/books")
	{
		books.GET("", h.List)
		books.GET("/:book_id", h.Get)

		books.POST("", middleware.RequireManager(), h.Create)
		books.PUT("/:book_id", middleware.RequireManager(), h.Update)
		books.DELETE("/:book_id", middleware.RequireManager(), h.Delete)
	}
}

// List returns every book with availability for the requested date range;
// both dates default to today
// GET /api/books?start=2006-01-02&end=2006-01-02
func (h *BookHandler) List(c *gin.Context) {
	now := time.Now()
	start, ok := parseDateParam(c, "start", now)
	if !ok {
		return
	}
	end, ok := parseDateParam(c, "end", now)
	if !ok {
		return
	}

	listing, err := h.bookService.ListWithAvailability(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Get returns a single book
// GET /api/books/:book_id
func (h *BookHandler) Get(c *gin.Context) {
	book, err := h.bookService.GetBook(c.Param("book_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Create adds a new book (manager only)
// POST /api/books
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := h.bookService.CreateBook(c.Request.Context(), middleware.CallerID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, book)
}

// Update edits a book's descriptive fields (manager only)
// PUT /api/books/:book_id
func (h *BookHandler) Update(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.bookService.UpdateBook(c.Request.Context(), middleware.CallerID(c), c.Param("book_id"), &req); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes a book (manager only)
// DELETE /api/books/:book_id
func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.bookService.DeleteBook(c.Request.Context(), middleware.CallerID(c), c.Param("book_id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseDateParam reads a day-precision query parameter, falling back to
// def when absent. Responds 400 itself on a malformed value.
func parseDateParam(c *gin.Context, name string, def time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}

	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " date, expected " + dateLayout})
		return time.Time{}, false
	}
	return parsed, true
}
