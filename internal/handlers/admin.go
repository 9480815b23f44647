package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"dailybuzz/internal/constants"
	"dailybuzz/internal/models"
	"dailybuzz/internal/services"
	"dailybuzz/internal/tasks"
	"dailybuzz/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	postService    *services.PostService
	settingService *services.SettingService
	imageService   *services.ImageService
	backupService  *services.BackupService
	scheduler      *tasks.Scheduler
}

func NewAdminHandler(postService *services.PostService, settingService *services.SettingService,
	imageService *services.ImageService, backupService *services.BackupService, scheduler *tasks.Scheduler) *AdminHandler {
	return &AdminHandler{
		postService:    postService,
		settingService: settingService,
		imageService:   imageService,
		backupService:  backupService,
		scheduler:      scheduler,
	}
}

// Dashboard renders the post list with status counters plus the editor form.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize := 10

	posts, total, err := h.postService.AdminFeed(c.Request.Context(), page, pageSize)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load posts")
		return
	}

	stats, err := h.postService.Stats(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load stats")
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	pagination := utils.GeneratePagination(page, totalPages)

	session := sessions.Default(c)
	flashes := session.Flashes(constants.SessionKeySuccessFlash)
	session.Save() // Clear flashes after reading

	render(c, http.StatusOK, "admin.html", gin.H{
		"posts":      posts,
		"stats":      stats,
		"categories": models.Categories,
		"Pagination": pagination,
		"Flashes":    flashes,
	})
}

// Editor renders the form pre-filled for an existing post.
func (h *AdminHandler) Editor(c *gin.Context) {
	idStr := c.Query("id")
	if idStr == "" {
		render(c, http.StatusOK, "editor.html", gin.H{
			"post":       nil,
			"categories": models.Categories,
		})
		return
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	post, err := h.postService.GetPostByID(c.Request.Context(), uint(id))
	if err != nil {
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	render(c, http.StatusOK, "editor.html", gin.H{
		"post":       post,
		"categories": models.Categories,
	})
}

// SavePost handles both create and edit submissions. Order matters: the
// submission is validated first, the image upload runs second, the store
// write goes last. Any failure aborts and leaves the prior state untouched.
func (h *AdminHandler) SavePost(c *gin.Context) {
	idStr := c.PostForm("id")

	in := services.PostInput{
		Title:    c.PostForm("title"),
		Excerpt:  c.PostForm("excerpt"),
		Category: c.PostForm("category"),
		Content:  c.PostForm("content"),
		ImageURL: c.PostForm("image_url"),
		Author:   c.PostForm("author"),
		Status:   c.PostForm("status"),
	}

	fileHeader, fileErr := c.FormFile("image")
	in.HasNewImage = fileErr == nil && fileHeader != nil

	if err := h.postService.Validate(in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	if in.HasNewImage {
		if fileHeader.Size > services.MaxImageBytes {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "File size should be less than 5MB"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to read uploaded file"})
			return
		}
		defer file.Close()

		url, err := h.imageService.Upload(c.Request.Context(), file, fileHeader.Size, fileHeader.Filename)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"status": "error", "message": "Image upload failed: " + err.Error()})
			return
		}
		in.ImageURL = url
	}

	var post *models.Post
	var err error
	if idStr == "" || idStr == "0" {
		post, err = h.postService.CreatePost(c.Request.Context(), in)
	} else {
		id, parseErr := strconv.ParseUint(idStr, 10, 64)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid post ID"})
			return
		}
		post, err = h.postService.UpdatePost(c.Request.Context(), uint(id), in)
	}

	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": verr.Error()})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Post not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to save post: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Post saved!",
		"post_id": post.ID,
		"slug":    post.Slug,
	})
}

// DeletePost hard-deletes a post. The caller must send confirm=true;
// deleting an id that is already gone is reported, not crashed on.
func (h *AdminHandler) DeletePost(c *gin.Context) {
	if c.PostForm("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Deletion requires confirmation"})
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid post ID"})
		return
	}

	err = h.postService.DeletePost(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Post already deleted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Post deleted"})
}

// BackupPosts streams a JSON snapshot of every post.
func (h *AdminHandler) BackupPosts(c *gin.Context) {
	backup, err := h.backupService.Export(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to export posts: " + err.Error()})
		return
	}

	jsonData, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to encode snapshot: " + err.Error()})
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=dailybuzz_backup_%s.json", time.Now().Format("20060102150405")))
	c.Data(http.StatusOK, "application/json", jsonData)
}

// RestorePosts imports a snapshot file uploaded through the admin form.
func (h *AdminHandler) RestorePosts(c *gin.Context) {
	file, err := c.FormFile("backup")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Failed to read uploaded file: " + err.Error()})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to open uploaded file: " + err.Error()})
		return
	}
	defer src.Close()

	var backup []models.PostBackup
	if err := json.NewDecoder(src).Decode(&backup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid snapshot file: " + err.Error()})
		return
	}

	if err := h.backupService.Restore(c.Request.Context(), backup); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to restore posts: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": fmt.Sprintf("Restored %d posts!", len(backup))})
}

func (h *AdminHandler) ShowSettingsPage(c *gin.Context) {
	// The render function injects settings from the context.
	render(c, http.StatusOK, "settings.html", gin.H{})
}

// UpdateSettings saves site settings. The password field only takes effect
// when non-empty and is stored as a bcrypt hash, never as submitted text.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid form data"})
		return
	}

	settingsToUpdate := make(map[string]string)
	for key, values := range c.Request.PostForm {
		if len(values) == 0 {
			continue
		}
		value := values[0]

		if key == "password" {
			if value == "" {
				continue
			}
			if err := h.settingService.SetPassword(value); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update password"})
				return
			}
			continue
		}
		settingsToUpdate[key] = value
	}

	if err := h.settingService.UpdateSettings(settingsToUpdate); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update settings"})
		return
	}

	// The snapshot schedule may have changed.
	h.scheduler.ReloadTasks()

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Settings saved!"})
}
