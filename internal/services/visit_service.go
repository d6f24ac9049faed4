// Package services – VisitService
//
// This file implements the VisitService, which records the append-only
// audit trail of tracked requests. Recording enriches the visitor IP with a
// best-effort country lookup and truncates user agents before insert.
//
// Tracking must never block or break the primary user flow: every failure
// is logged at warn level and swallowed. Callers get no error back.
package services

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-wheel-backend/internal/domain"
	"github.com/tbourn/go-wheel-backend/internal/geo"
	"github.com/tbourn/go-wheel-backend/internal/utils"
)

// VisitRepo defines the repository contract required by VisitService.
type VisitRepo interface {
	// CreateVisit inserts one visit row.
	CreateVisit(ctx context.Context, db *gorm.DB, v *domain.Visit) error
}

// VisitService records visits with geolocation enrichment. It is safe for
// concurrent use.
type VisitService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the visit repository used by this service.
	Repo VisitRepo
	// Resolver maps visitor IPs to countries; never errors.
	Resolver geo.CountryResolver
}

// NewVisitService constructs a VisitService bound to db, r, and resolver.
func NewVisitService(db *gorm.DB, r VisitRepo, resolver geo.CountryResolver) *VisitService {
	return &VisitService{DB: db, Repo: r, Resolver: resolver}
}

// Record tracks one request. wheelID is nil for homepage visits and the
// wheel's external unique ID otherwise. The user agent is truncated to
// domain.MaxUserAgentLen runes. The country lookup is synchronous and
// bounded by the resolver's timeout.
//
// Record never returns an error: insert failures are logged and swallowed
// so tracking cannot break the page the visitor asked for.
func (s *VisitService) Record(ctx context.Context, ip, userAgent, visitType string, wheelID *string) {
	v := &domain.Visit{
		IPAddress: ip,
		Country:   s.Resolver.Resolve(ctx, ip),
		UserAgent: utils.TruncateRunes(userAgent, domain.MaxUserAgentLen),
		WheelID:   wheelID,
		VisitType: visitType,
	}
	if err := s.Repo.CreateVisit(ctx, s.DB, v); err != nil {
		log.Warn().Err(err).
			Str("visit_type", visitType).
			Str("ip", ip).
			Msg("visit tracking failed")
	}
}
