package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/nazarshv/teamtrack/backend/internal/middleware"
	"github.com/nazarshv/teamtrack/backend/internal/services"
	"github.com/nazarshv/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{commentService: services.NewCommentService(db)}
}

// List returns the project's comments
// GET /projects/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	comments, err := h.commentService.List(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, comments)
}

// Add posts a comment to the project
// POST /projects/:id/comments
func (h *CommentHandler) Add(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req services.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "missing comment content")
		return
	}

	user := middleware.CurrentUser(c)
	if _, err := h.commentService.Add(user, id, &req); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"message": "comment added successfully"})
}
