package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/nazarshv/teamtrack/backend/internal/middleware"
	"github.com/nazarshv/teamtrack/backend/internal/services"
	"github.com/nazarshv/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type RatingHandler struct {
	ratingService *services.RatingService
}

func NewRatingHandler(db *gorm.DB) *RatingHandler {
	return &RatingHandler{ratingService: services.NewRatingService(db)}
}

// List returns the project's ratings, scoped by role
// GET /projects/:id/ratings
func (h *RatingHandler) List(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	items, err := h.ratingService.List(user, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, items)
}

// Add records or replaces a specialist's rating
// POST /projects/:id/ratings
func (h *RatingHandler) Add(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req services.AddRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.ratingService.Add(user, id, &req); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "rating added successfully")
}
