package handlers

import (
	"net/http"
	"strings"

	"dailybuzz/internal/constants"
	"dailybuzz/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// AuthMiddleware checks if an editor is signed in via the session flag.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		authenticated := session.Get(constants.SessionKeyAuthenticated)

		if authenticated == nil || !authenticated.(bool) {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Next()
	}
}

// APIAuthMiddleware checks for a valid Bearer token minted by the API login.
func APIAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be Bearer {token}"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// SettingsMiddleware loads site settings into the context for templates,
// along with the current login state.
func SettingsMiddleware(settingService *services.SettingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := settingService.GetAllSettings()
		if err != nil {
			// The site can still render with defaults.
			log.Warn().Err(err).Msg("failed to load settings")
			c.Set(constants.ContextKeySettings, make(map[string]string))
		} else {
			c.Set(constants.ContextKeySettings, settings)
		}

		session := sessions.Default(c)
		isLoggedIn := session.Get(constants.SessionKeyAuthenticated)
		c.Set(constants.ContextKeyIsLoggedIn, isLoggedIn != nil && isLoggedIn.(bool))

		c.Next()
	}
}

// isLoggedIn reads the login state placed on the context by SettingsMiddleware.
func isLoggedIn(c *gin.Context) bool {
	value, exists := c.Get(constants.ContextKeyIsLoggedIn)
	return exists && value.(bool)
}

// render is a helper function to render templates with common data.
func render(c *gin.Context, status int, templateName string, data gin.H) {
	// Merge site settings into the data map without clobbering page data.
	settings, exists := c.Get(constants.ContextKeySettings)
	if exists {
		for key, value := range settings.(map[string]string) {
			if _, ok := data[key]; !ok {
				data[key] = value
			}
		}
	}

	data["IsLoggedIn"] = isLoggedIn(c)

	c.HTML(status, templateName, data)
}
