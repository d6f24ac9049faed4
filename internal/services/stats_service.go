// Package services – StatsService
//
// This file implements the StatsService, which assembles the admin
// dashboard overview from the repository's aggregate queries: visitor and
// visit totals, a rolling distinct-visitor window, recent wheels annotated
// with visitor counts, and the country breakdown.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-wheel-backend/internal/repo"
)

// StatsRepo defines the repository contract required by StatsService.
type StatsRepo interface {
	DistinctVisitors(ctx context.Context, db *gorm.DB) (int64, error)
	DistinctVisitorsSince(ctx context.Context, db *gorm.DB, since time.Time) (int64, error)
	CountVisits(ctx context.Context, db *gorm.DB) (int64, error)
	CountWheels(ctx context.Context, db *gorm.DB) (int64, error)
	RecentWheels(ctx context.Context, db *gorm.DB, limit int) ([]repo.WheelStats, error)
	CountryBreakdown(ctx context.Context, db *gorm.DB, limit int) ([]repo.CountryCount, error)
}

// Overview is the full dashboard payload rendered for an authenticated
// admin.
type Overview struct {
	TotalVisitors  int64               `json:"total_visitors"`
	TotalVisits    int64               `json:"total_visits"`
	Visitors30Days int64               `json:"visitors_30_days"`
	TotalWheels    int64               `json:"total_wheels"`
	RecentWheels   []repo.WheelStats   `json:"recent_wheels"`
	Countries      []repo.CountryCount `json:"countries"`
}

// StatsService computes the admin dashboard overview.
type StatsService struct {
	// DB is the GORM handle used for queries.
	DB *gorm.DB
	// Repo supplies the aggregate queries.
	Repo StatsRepo

	// RecentWheelLimit caps the recent-wheels table (default 50).
	RecentWheelLimit int
	// CountryLimit caps the country breakdown (default 20).
	CountryLimit int
	// VisitorWindow is the rolling distinct-visitor window (default 30 days).
	VisitorWindow time.Duration
}

// NewStatsService constructs a StatsService with the dashboard defaults.
func NewStatsService(db *gorm.DB, r StatsRepo) *StatsService {
	return &StatsService{
		DB:               db,
		Repo:             r,
		RecentWheelLimit: 50,
		CountryLimit:     20,
		VisitorWindow:    30 * 24 * time.Hour,
	}
}

// Compute runs all aggregate queries and returns the assembled overview.
// The queries are read-only and independent; the first error aborts.
func (s *StatsService) Compute(ctx context.Context) (*Overview, error) {
	o := &Overview{}
	var err error

	if o.TotalVisitors, err = s.Repo.DistinctVisitors(ctx, s.DB); err != nil {
		return nil, err
	}
	if o.TotalVisits, err = s.Repo.CountVisits(ctx, s.DB); err != nil {
		return nil, err
	}
	since := time.Now().UTC().Add(-s.VisitorWindow)
	if o.Visitors30Days, err = s.Repo.DistinctVisitorsSince(ctx, s.DB, since); err != nil {
		return nil, err
	}
	if o.TotalWheels, err = s.Repo.CountWheels(ctx, s.DB); err != nil {
		return nil, err
	}
	if o.RecentWheels, err = s.Repo.RecentWheels(ctx, s.DB, s.RecentWheelLimit); err != nil {
		return nil, err
	}
	if o.Countries, err = s.Repo.CountryBreakdown(ctx, s.DB, s.CountryLimit); err != nil {
		return nil, err
	}
	return o, nil
}
