package handler

import (
	"net/http"

	"bookrental/internal/api/dto"
	"bookrental/internal/api/middleware"
	"bookrental/internal/api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers user administration routes
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", h.List)
		users.GET("/:user_id", h.Get)
		users.POST("", h.Create)
		users.PUT("/:user_id", middleware.RequireManager(), h.Update)
		users.DELETE("/:user_id", middleware.RequireManager(), h.Delete)
	}
}

// List returns all user records
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers(middleware.CallerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get returns a single user record
// GET /api/users/:user_id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetUser(c.Param("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Create makes a user record for another identity; only managers may do
// this for an id other than their own
// POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.CreateUser(middleware.CallerID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Update edits a user's name and role (manager only)
// PUT /api/users/:user_id
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.UpdateUser(middleware.CallerID(c), c.Param("user_id"), &req); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes a user record (manager only, never one's own)
// DELETE /api/users/:user_id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.DeleteUser(middleware.CallerID(c), c.Param("user_id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
