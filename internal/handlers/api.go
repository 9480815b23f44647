package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"dailybuzz/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type APIHandler struct {
	postService    *services.PostService
	settingService *services.SettingService
	jwtSecret      string
}

func NewAPIHandler(postService *services.PostService, settingService *services.SettingService, jwtSecret string) *APIHandler {
	return &APIHandler{
		postService:    postService,
		settingService: settingService,
		jwtSecret:      jwtSecret,
	}
}

// Login exchanges the editor password for a bearer token.
func (h *APIHandler) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.settingService.VerifyPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong password"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "editor",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed})
}

// ListPosts serves the published feed: the home feed by default, a category
// feed when ?category= is present.
func (h *APIHandler) ListPosts(c *gin.Context) {
	category := c.Query("category")

	var err error
	var posts interface{}
	if category != "" {
		posts, err = h.postService.CategoryFeed(c.Request.Context(), category)
	} else {
		posts, err = h.postService.HomeFeed(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

type apiPostRequest struct {
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Category string `json:"category"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
	Author   string `json:"author"`
	Status   string `json:"status"`
}

func (r *apiPostRequest) input() services.PostInput {
	return services.PostInput{
		Title:    r.Title,
		Excerpt:  r.Excerpt,
		Category: r.Category,
		Content:  r.Content,
		ImageURL: r.ImageURL,
		Author:   r.Author,
		Status:   r.Status,
	}
}

// CreatePost handles the API request to create a new post.
func (h *APIHandler) CreatePost(c *gin.Context) {
	var req apiPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), req.input())
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UpdatePost handles the API request to edit an existing post.
func (h *APIHandler) UpdatePost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var req apiPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), uint(id), req.input())
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost handles the API delete. Like the admin form it refuses to act
// without confirm=true, and a repeat delete answers 404, never a crash.
func (h *APIHandler) DeletePost(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deletion requires confirm=true"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
