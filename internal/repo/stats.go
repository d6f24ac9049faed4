// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the aggregate queries behind the admin
// dashboard. Each function is context-aware and safe to call from services
// or handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-wheel-backend/internal/domain"
)

// WheelStats is one row of the recent-wheels dashboard table: wheel
// metadata annotated with the number of distinct visitor IPs that have
// accessed it. Wheels with no visits report zero (left-join semantics).
type WheelStats struct {
	UniqueID       string    `json:"unique_id"`
	Names          string    `json:"names"`
	NameCount      int       `json:"name_count"`
	CreatorCountry string    `json:"creator_country"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessed   time.Time `json:"last_accessed"`
	VisitorCount   int64     `json:"visitor_count"`
}

// CountryCount is one row of the country breakdown: total visits recorded
// from a country.
type CountryCount struct {
	Country string `json:"country"`
	Visits  int64  `json:"visits"`
}

// DistinctVisitors returns the number of distinct visitor IPs across all
// recorded visits.
func DistinctVisitors(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Visit{}).
		Distinct("ip_address").
		Count(&n).Error
	return n, err
}

// DistinctVisitorsSince returns the number of distinct visitor IPs whose
// visits happened at or after since (inclusive boundary).
func DistinctVisitorsSince(ctx context.Context, db *gorm.DB, since time.Time) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Visit{}).
		Where("visited_at >= ?", since).
		Distinct("ip_address").
		Count(&n).Error
	return n, err
}

// RecentWheels returns the limit most-recently-created wheels, newest
// first, each annotated with its distinct visitor count. The join is by the
// external unique_id so visits with no matching wheel simply do not count.
func RecentWheels(ctx context.Context, db *gorm.DB, limit int) ([]WheelStats, error) {
	var out []WheelStats
	err := db.WithContext(ctx).
		Model(&domain.Wheel{}).
		Select("wheels.unique_id, wheels.names, wheels.name_count, wheels.creator_country, wheels.created_at, wheels.last_accessed, COUNT(DISTINCT visits.ip_address) AS visitor_count").
		Joins("LEFT JOIN visits ON visits.wheel_id = wheels.unique_id").
		Group("wheels.id").
		Order("wheels.created_at DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

// CountryBreakdown returns up to limit countries ordered by total visit
// count descending. Tie order between equal counts is not defined.
func CountryBreakdown(ctx context.Context, db *gorm.DB, limit int) ([]CountryCount, error) {
	var out []CountryCount
	err := db.WithContext(ctx).
		Model(&domain.Visit{}).
		Select("country, COUNT(*) AS visits").
		Group("country").
		Order("visits DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
