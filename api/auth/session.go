package auth

import (
	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/arinadev/recipebook/api/models"
)

// Session keys for the logged-in user.
const (
	sessionUserID   = "user_id"
	sessionUsername = "user_username"
	sessionIsAdmin  = "user_is_admin"
)

// ContextUserKey is the gin context key under which RequireAuth stores the user.
const ContextUserKey = "user"

// CurrentUser returns the identity stored in the session, or nil for
// anonymous requests. It works on public routes too, where RequireAuth
// hasn't populated the gin context.
func CurrentUser(c *gin.Context) *models.User {
	session := sessions.Default(c)

	id, ok := session.Get(sessionUserID).(uint)
	if !ok {
		return nil
	}
	username, _ := session.Get(sessionUsername).(string)
	isAdmin, _ := session.Get(sessionIsAdmin).(bool)

	return &models.User{
		ID:       id,
		Username: username,
		IsAdmin:  isAdmin,
	}
}

// Flash queues a one-shot status message for the next rendered page.
func Flash(c *gin.Context, severity, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, severity)
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
	}
}

// Flashes drains all queued flash messages, success first.
func Flashes(c *gin.Context) []models.FlashMessage {
	session := sessions.Default(c)

	var flashes []models.FlashMessage
	for _, severity := range []string{models.FlashSuccess, models.FlashDanger} {
		for _, flash := range session.Flashes(severity) {
			message, ok := flash.(string)
			if !ok {
				continue
			}
			flashes = append(flashes, models.FlashMessage{Severity: severity, Message: message})
		}
	}

	// reading flashes removes them, persist that
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
	}
	return flashes
}
