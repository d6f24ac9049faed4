// Package handlers provides HTTP handler implementations for the public
// pages.
//
// This file defines the small response utilities shared by all endpoints.
// The surface is an HTML site, not a JSON API: success means a rendered
// template, and most failures resolve to a soft-fail redirect to the home
// page rather than an error status.
//
// Conventions:
//   - render() writes an HTML template with the given status.
//   - redirectHome() / redirectWheel() issue 302 redirects, the only
//     "error channel" the public pages use for missing resources.
//   - fail() centralizes 5xx handling: it logs with request context and
//     renders a minimal error page.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-wheel-backend/internal/http/middleware"
)

// render writes template name with data as an HTML response.
func render(c *gin.Context, status int, name string, data gin.H) {
	c.HTML(status, name, data)
}

// redirectHome sends the visitor back to the home page. Used both for the
// not-found soft-fail policy and for unmatched routes.
func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
}

// RedirectHome is the exported variant of redirectHome, used by the router
// for the catch-all route.
func RedirectHome(c *gin.Context) { redirectHome(c) }

// redirectWheel sends the visitor to a wheel's view page after creation.
func redirectWheel(c *gin.Context, uniqueID string) {
	c.Redirect(http.StatusFound, "/wheel/"+uniqueID)
}

// fail logs a server-side error with the request-scoped logger and renders
// a minimal error page. Only used for 5xx conditions; user-visible problems
// are handled inline by each page.
func fail(c *gin.Context, status int, msg string, err error) {
	lg := middleware.LoggerFrom(c)
	lg.Error().
		Err(err).
		Int("status", status).
		Str("message", msg).
		Msg("page error")

	c.String(status, "something went wrong")
	c.Abort()
}
