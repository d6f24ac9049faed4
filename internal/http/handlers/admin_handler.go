// Admin HTTP handlers.
//
// This file exposes the password-gated statistics dashboard:
//   - GET  /admin  (login form)
//   - POST /admin  (authenticate and render the dashboard)
//
// No session or token is issued: every dashboard view re-submits the
// password. A mismatch re-renders the login form with an error and no
// statistics. Admin requests are not visit-tracked.
package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Admin serves the dashboard. GET always shows the login form. POST checks
// the submitted password against the configured secret with a constant-time
// compare; on success it computes and renders the full statistics overview.
func (h *Handlers) Admin(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		render(c, http.StatusOK, "admin.html", gin.H{
			"Authenticated": false,
		})
		return
	}

	password := c.PostForm("password")
	if subtle.ConstantTimeCompare([]byte(password), []byte(h.adminPassword)) != 1 {
		render(c, http.StatusOK, "admin.html", gin.H{
			"Authenticated": false,
			"Error":         "Invalid password",
		})
		return
	}

	overview, err := h.statsSvc.Compute(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "compute stats", err)
		return
	}

	render(c, http.StatusOK, "admin.html", gin.H{
		"Authenticated": true,
		"Stats":         overview,
	})
}
