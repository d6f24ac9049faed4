// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Wheel model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a wheel is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Functions:
//
//   - CreateWheel(ctx, db, names, creatorCountry) -> *domain.Wheel, error
//     Inserts a new Wheel row with a generated 8-char unique ID.
//
//   - GetWheel(ctx, db, uniqueID) -> *domain.Wheel, error
//     Fetches a single wheel by its external ID, or ErrNotFound if missing.
//
//   - TouchWheel(ctx, db, uniqueID) -> error
//     Advances last_accessed; a missing wheel is a no-op, not an error.
//
//   - UpdateWheelNames(ctx, db, uniqueID, names) -> error
//     Overwrites names, name_count and last_accessed atomically.
//     Returns ErrNotFound if the wheel does not exist.
//
//   - CountWheels(ctx, db) -> (int64, error)
//     Returns the total number of wheels ever created.
//
// This repository is designed to be wrapped by a higher-level service
// (see services.WheelService) which enforces name normalization and the
// default-list fallback.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-wheel-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// uniqueIDLen is the length of the externally visible wheel identifier.
const uniqueIDLen = 8

// NewUniqueID generates the external wheel identifier: the first 8
// characters of a random UUID. Collisions are accepted as negligible and
// not checked for.
func NewUniqueID() string {
	return uuid.NewString()[:uniqueIDLen]
}

// CreateWheel inserts a new Wheel row holding names and the creator's
// country. The caller is expected to pass an already normalized, non-empty
// name list. CreatedAt and LastAccessed are both set to now (UTC).
//
// On success, it returns the persisted Wheel. On failure, it returns a DB error.
func CreateWheel(ctx context.Context, db *gorm.DB, names []string, creatorCountry string) (*domain.Wheel, error) {
	now := time.Now().UTC()
	w := &domain.Wheel{
		UniqueID:       NewUniqueID(),
		CreatorCountry: creatorCountry,
		CreatedAt:      now,
		LastAccessed:   now,
	}
	if err := w.SetNames(names); err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Create(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

// GetWheel fetches a single wheel by its external unique ID. If the record
// does not exist, it returns ErrNotFound. On other DB errors, the raw error
// is returned.
func GetWheel(ctx context.Context, db *gorm.DB, uniqueID string) (*domain.Wheel, error) {
	var w domain.Wheel
	err := db.WithContext(ctx).
		Where("unique_id = ?", uniqueID).
		First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// TouchWheel advances last_accessed to now for the wheel identified by
// uniqueID. Touching a missing wheel affects zero rows and is not an error.
func TouchWheel(ctx context.Context, db *gorm.DB, uniqueID string) error {
	return db.WithContext(ctx).
		Model(&domain.Wheel{}).
		Where("unique_id = ?", uniqueID).
		Update("last_accessed", time.Now().UTC()).Error
}

// UpdateWheelNames overwrites the name list of the wheel identified by
// uniqueID, keeping name_count in sync and advancing last_accessed. The
// caller passes an already normalized, non-empty list. If no rows are
// affected, it returns ErrNotFound. On DB error, the raw error is returned.
func UpdateWheelNames(ctx context.Context, db *gorm.DB, uniqueID string, names []string) error {
	var w domain.Wheel
	if err := w.SetNames(names); err != nil {
		return err
	}
	res := db.WithContext(ctx).
		Model(&domain.Wheel{}).
		Where("unique_id = ?", uniqueID).
		Updates(map[string]any{
			"names":         w.Names,
			"name_count":    w.NameCount,
			"last_accessed": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountWheels returns the total number of wheels.
// On DB error, it returns the error.
func CountWheels(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Wheel{}).
		Count(&total).Error
	return total, err
}
