package handler

import (
	"net/http"

	"giphyexplorer/internal/microservices/http-api/dto"
	"giphyexplorer/internal/microservices/http-api/middleware"
	"giphyexplorer/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// RegisterRoutes registers rating-related routes
func (h *RatingHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	ratings := rg.Group("/ratings")
	{
		// Public routes
		ratings.GET("/:gifId", h.List)
		ratings.GET("/:gifId/summary", h.Summary)

		// Write routes
		ratings.POST("", requireAuth, h.Submit)
		ratings.PUT("/:gifId", requireAuth, h.Update)
		ratings.DELETE("/:gifId", requireAuth, h.Delete)
	}
}

// Submit creates or overwrites the caller's rating for a GIF
// POST /api/ratings
func (h *RatingHandler) Submit(c *gin.Context) {
	var req dto.CreateRatingDTO
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	rating, created, err := h.ratingService.Submit(c.Request.Context(), middleware.CurrentUserID(c), req.GifID, req.Rating)
	if err != nil {
		_ = c.Error(err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, rating)
}

// List returns all ratings for a GIF
// GET /api/ratings/:gifId
func (h *RatingHandler) List(c *gin.Context) {
	ratings, err := h.ratingService.ListForGif(c.Request.Context(), c.Param("gifId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}

// Summary returns the average rating and count for a GIF
// GET /api/ratings/:gifId/summary
func (h *RatingHandler) Summary(c *gin.Context) {
	summary, err := h.ratingService.Summary(c.Request.Context(), c.Param("gifId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Update changes the caller's rating for a GIF
// PUT /api/ratings/:gifId
func (h *RatingHandler) Update(c *gin.Context) {
	var req dto.UpdateRatingDTO
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	rating, err := h.ratingService.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("gifId"), req.Rating)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

// Delete removes the caller's rating for a GIF
// DELETE /api/ratings/:gifId
func (h *RatingHandler) Delete(c *gin.Context) {
	if err := h.ratingService.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("gifId")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
