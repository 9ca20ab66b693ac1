package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskly-be/internal/entities"
	"taskly-be/internal/models"
)

// taskNotFoundMessage covers both missing tasks and tasks owned by someone else.
const taskNotFoundMessage = "Task not found or unauthorized"

// respondError maps a service error to a status code and a JSON message.
// Only task lookups produce ErrNotFound. Anything not recognised is logged
// and reported as a generic server error.
func respondError(c *gin.Context, err error) {
	var validationErr *entities.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.MessageResponse{Message: validationErr.Message})
	case errors.Is(err, entities.ErrDuplicateUser):
		c.JSON(http.StatusBadRequest, models.MessageResponse{Message: "User already exists"})
	case errors.Is(err, entities.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, models.MessageResponse{Message: "Invalid email or password"})
	case errors.Is(err, entities.ErrInvalidToken), errors.Is(err, entities.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, models.MessageResponse{Message: "Unauthorized"})
	case errors.Is(err, entities.ErrNotFound):
		c.JSON(http.StatusNotFound, models.MessageResponse{Message: taskNotFoundMessage})
	default:
		log.Printf("Error handling %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, models.MessageResponse{Message: "Server error"})
	}
}
