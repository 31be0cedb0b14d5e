package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arinadev/recipebook/api/models"
)

// RequireAuth redirects anonymous requests to the login page and stores the
// session identity in the gin context for downstream handlers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
	}
}

// RequireAdmin gates recipe mutations: authenticated non-admins get an access
// denied flash and a redirect to the recipe list, the mutation never runs.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := c.MustGet(ContextUserKey).(*models.User)
		if !ok || !user.IsAdmin {
			Flash(c, models.FlashDanger, "Access denied! Only administrators can manage recipes.")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
