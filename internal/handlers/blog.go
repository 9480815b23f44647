package handlers

import (
	"errors"
	"net/http"

	"dailybuzz/internal/models"
	"dailybuzz/internal/services"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	postService *services.PostService
}

func NewBlogHandler(postService *services.PostService) *BlogHandler {
	return &BlogHandler{postService: postService}
}

// Index renders the home feed: the twelve newest published posts.
func (h *BlogHandler) Index(c *gin.Context) {
	posts, err := h.postService.HomeFeed(c.Request.Context())
	if err != nil {
		render(c, http.StatusInternalServerError, "404.html", gin.H{
			"error": "Failed to load posts",
		})
		return
	}

	render(c, http.StatusOK, "index.html", gin.H{
		"posts":    posts,
		"is_index": true,
	})
}

// CategoryFeed renders one category's published posts. The /captions route
// is an alias of the news view, so the category key is fixed per route
// rather than read from the URL.
func (h *BlogHandler) CategoryFeed(categoryKey, heading string) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := h.postService.CategoryFeed(c.Request.Context(), categoryKey)
		if err != nil {
			render(c, http.StatusInternalServerError, "404.html", gin.H{
				"error": "Failed to load posts",
			})
			return
		}

		category, _ := models.CategoryByKey(categoryKey)
		render(c, http.StatusOK, "category.html", gin.H{
			"posts":    posts,
			"category": category,
			"heading":  heading,
		})
	}
}

// ShowPost renders a single post by slug. A miss is a normal outcome and
// gets the 404 page. Signed-in editors can preview drafts; readers cannot
// reach them even by direct URL.
func (h *BlogHandler) ShowPost(c *gin.Context) {
	slug := c.Param("slug")

	post, err := h.postService.GetPostBySlug(c.Request.Context(), slug, isLoggedIn(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			render(c, http.StatusNotFound, "404.html", gin.H{})
			return
		}
		render(c, http.StatusInternalServerError, "404.html", gin.H{
			"error": "Failed to load post",
		})
		return
	}

	render(c, http.StatusOK, "post.html", gin.H{
		"post": post,
	})
}

func (h *BlogHandler) NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404.html", gin.H{})
}
