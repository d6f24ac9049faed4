// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Visit
// model. Visits are append-only: the application never updates or deletes
// them.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-wheel-backend/internal/domain"
)

// CreateVisit inserts a single visit row. VisitedAt is set to now (UTC)
// when the caller left it zero. On failure, it returns the DB error; the
// service layer decides whether to surface or swallow it.
func CreateVisit(ctx context.Context, db *gorm.DB, v *domain.Visit) error {
	if v.VisitedAt.IsZero() {
		v.VisitedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(v).Error
}

// CountVisits returns the total number of recorded visits.
func CountVisits(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Visit{}).
		Count(&total).Error
	return total, err
}
