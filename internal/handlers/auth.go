package handlers

import (
	"net/http"

	"dailybuzz/internal/constants"
	"dailybuzz/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	settingService *services.SettingService
}

func NewAuthHandler(settingService *services.SettingService) *AuthHandler {
	return &AuthHandler{settingService: settingService}
}

func (h *AuthHandler) ShowLoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{})
}

// Login verifies the editor password and establishes the session. The
// session is the only principal: signedOut -> signedIn -> signedOut.
func (h *AuthHandler) Login(c *gin.Context) {
	session := sessions.Default(c)
	submittedPassword := c.PostForm("password")

	if !h.settingService.VerifyPassword(submittedPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Wrong password, please try again.",
		})
		return
	}

	session.Set(constants.SessionKeyAuthenticated, true)
	session.Save()
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/login")
}
