package handler

import (
	"net/http"
	"strconv"

	"giphyexplorer/internal/microservices/http-api/apperror"
	"giphyexplorer/internal/microservices/http-api/dto"
	"giphyexplorer/internal/microservices/http-api/middleware"
	"giphyexplorer/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// RegisterRoutes registers comment-related routes
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	comments := rg.Group("/comments")
	{
		// Public routes
		comments.GET("/gif/:gifId", h.List)
		comments.GET("/:id", h.Get)

		// Write routes
		comments.POST("", requireAuth, h.Create)
		comments.PUT("/:id", requireAuth, h.Update)
		comments.DELETE("/:id", requireAuth, h.Delete)
	}
}

func commentID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.NewValidation("Invalid comment ID")
	}
	return id, nil
}

// Create posts a comment on a GIF
// POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentDTO
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), middleware.CurrentUserID(c), req.GifID, req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// List returns a GIF's comments, newest first
// GET /api/comments/gif/:gifId
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.commentService.ListForGif(c.Request.Context(), c.Param("gifId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Get returns a single comment
// GET /api/comments/:id
func (h *CommentHandler) Get(c *gin.Context) {
	id, err := commentID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Update edits the caller's own comment
// PUT /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	id, err := commentID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req dto.UpdateCommentDTO
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), middleware.CurrentUserID(c), id, req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete removes the caller's own comment
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := commentID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
