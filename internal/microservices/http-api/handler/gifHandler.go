package handler

import (
	"net/http"

	"giphyexplorer/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type GifHandler struct {
	gifService service.GifService
}

func NewGifHandler(gifService service.GifService) *GifHandler {
	return &GifHandler{gifService: gifService}
}

// RegisterRoutes registers the public /gifs routes. trending must precede :id.
func (h *GifHandler) RegisterRoutes(rg *gin.RouterGroup) {
	gifs := rg.Group("/gifs")
	{
		gifs.GET("/search", h.Search)
		gifs.GET("/trending", h.Trending)
		gifs.GET("/:id", h.Get)
	}
}

func pagination(c *gin.Context) (int, int, error) {
	limit, err := queryInt(c, "limit", service.DefaultGifLimit)
	if err != nil {
		return 0, 0, err
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

// Search GET /api/gifs/search?q=&limit=&offset=
func (h *GifHandler) Search(c *gin.Context) {
	limit, offset, err := pagination(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	page, err := h.gifService.Search(c.Request.Context(), c.Query("q"), limit, offset)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Trending GET /api/gifs/trending?limit=&offset=
func (h *GifHandler) Trending(c *gin.Context) {
	limit, offset, err := pagination(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	page, err := h.gifService.Trending(c.Request.Context(), limit, offset)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get GET /api/gifs/:id
func (h *GifHandler) Get(c *gin.Context) {
	item, err := h.gifService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}
