// Wheel HTTP handlers.
//
// This file exposes the visitor-facing pages:
//   - GET/POST /            (home: creation form / create wheel)
//   - GET/POST /wheel/:id   (view a wheel / update its names)
//
// Handlers are transport-thin: they parse the form, call application
// services, and translate results into rendered pages or redirects. Every
// tracked request records a Visit before the response is written; tracking
// is best-effort and never fails the request.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-wheel-backend/internal/domain"
	"github.com/tbourn/go-wheel-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// WheelService defines wheel lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type WheelService interface {
	// Create inserts a wheel from a raw name submission, applying the
	// default-list fallback.
	Create(ctx context.Context, names []string, creatorCountry string) (*domain.Wheel, error)
	// Get fetches a wheel by its external unique ID.
	Get(ctx context.Context, uniqueID string) (*domain.Wheel, error)
	// Touch advances a wheel's last_accessed timestamp.
	Touch(ctx context.Context, uniqueID string) error
	// UpdateNames overwrites a wheel's names and returns the stored list;
	// blank submissions are a no-op returning nil.
	UpdateNames(ctx context.Context, uniqueID string, names []string) ([]string, error)
}

// VisitRecorder captures the append-only visit trail. Record never fails.
type VisitRecorder interface {
	Record(ctx context.Context, ip, userAgent, visitType string, wheelID *string)
}

// CountryResolver resolves the creator's country at wheel creation time.
type CountryResolver interface {
	Resolve(ctx context.Context, ip string) string
}

// StatsService computes the admin dashboard overview.
type StatsService interface {
	Compute(ctx context.Context) (*services.Overview, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for the home, wheel, and admin pages.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	wheelSvc      WheelService
	visitSvc      VisitRecorder
	statsSvc      StatsService
	resolver      CountryResolver
	adminPassword string
}

// New constructs a Handlers instance bound to the given services.
func New(wheelSvc WheelService, visitSvc VisitRecorder, statsSvc StatsService, resolver CountryResolver, adminPassword string) *Handlers {
	return &Handlers{
		wheelSvc:      wheelSvc,
		visitSvc:      visitSvc,
		statsSvc:      statsSvc,
		resolver:      resolver,
		adminPassword: adminPassword,
	}
}

// clientIP extracts the visitor's IP, preferring proxy headers in the order
// the edge stack sets them: CF-Connecting-IP, then the first entry of
// X-Forwarded-For, then the transport remote address.
func clientIP(c *gin.Context) string {
	if ip := strings.TrimSpace(c.GetHeader("CF-Connecting-IP")); ip != "" {
		return ip
	}
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if first, _, found := strings.Cut(fwd, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	return c.ClientIP()
}

// formNames reads the repeated names[] form field.
func formNames(c *gin.Context) []string {
	return c.PostFormArray("names[]")
}

//
// Handlers
//

// Home serves the creation page.
//
// Every request records a homepage visit first. GET renders the creation
// form with the default names prefilled. POST creates a wheel from the
// names[] fields (falling back to the default list when all blank), records
// a wheel_created visit, and redirects to the new wheel's page.
func (h *Handlers) Home(c *gin.Context) {
	ctx := c.Request.Context()
	ip := clientIP(c)
	ua := c.Request.UserAgent()

	h.visitSvc.Record(ctx, ip, ua, domain.VisitHomepage, nil)

	if c.Request.Method != http.MethodPost {
		render(c, http.StatusOK, "index.html", gin.H{
			"DefaultNames": domain.DefaultNames,
		})
		return
	}

	country := h.resolver.Resolve(ctx, ip)
	w, err := h.wheelSvc.Create(ctx, formNames(c), country)
	if err != nil {
		fail(c, http.StatusInternalServerError, "create wheel", err)
		return
	}

	h.visitSvc.Record(ctx, ip, ua, domain.VisitWheelCreated, &w.UniqueID)
	redirectWheel(c, w.UniqueID)
}

// Wheel serves a wheel's page.
//
// The wheel is resolved first; an unknown ID redirects home without
// recording anything (soft-fail policy). For an existing wheel the handler
// touches last_accessed, applies a POSTed name update (blank submissions
// are a no-op edit), records a wheel_access visit, and renders the current
// name list.
func (h *Handlers) Wheel(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	w, err := h.wheelSvc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrWheelNotFound) {
			redirectHome(c)
			return
		}
		fail(c, http.StatusInternalServerError, "load wheel", err)
		return
	}

	if err := h.wheelSvc.Touch(ctx, id); err != nil {
		fail(c, http.StatusInternalServerError, "touch wheel", err)
		return
	}

	names := w.NameList()
	if c.Request.Method == http.MethodPost {
		updated, err := h.wheelSvc.UpdateNames(ctx, id, formNames(c))
		if err != nil {
			fail(c, http.StatusInternalServerError, "update wheel", err)
			return
		}
		if updated != nil {
			// The service returns the normalized list it stored.
			names = updated
		}
	}

	h.visitSvc.Record(ctx, clientIP(c), c.Request.UserAgent(), domain.VisitWheelAccess, &w.UniqueID)

	render(c, http.StatusOK, "wheel.html", gin.H{
		"WheelID": w.UniqueID,
		"Names":   names,
	})
}
