package handlers

import (
	"math"
	"net/http"
	"strconv"

	"dailybuzz/internal/services"
	"dailybuzz/internal/utils"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	postService *services.PostService
}

func NewSearchHandler(postService *services.PostService) *SearchHandler {
	return &SearchHandler{postService: postService}
}

func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize := 10

	posts, total, err := h.postService.SearchPublishedPage(c.Request.Context(), query, page, pageSize)
	if err != nil {
		render(c, http.StatusInternalServerError, "404.html", gin.H{
			"error": "Search failed",
		})
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	pagination := utils.GeneratePagination(page, totalPages)

	render(c, http.StatusOK, "search.html", gin.H{
		"posts":      posts,
		"query":      query,
		"Pagination": pagination,
	})
}
