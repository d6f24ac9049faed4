// Package services – WheelService
//
// This file implements the WheelService, which manages the lifecycle of
// wheels. It normalizes submitted name lists (trim, drop blanks), applies
// the default-list fallback on empty creations, and coordinates repository
// operations for creating, fetching, touching, and renaming wheels.
//
// Service-level errors (e.g., ErrWheelNotFound) are returned for predictable
// cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-wheel-backend/internal/domain"
)

// WheelRepo defines the repository contract required by WheelService.
// Implementations are responsible for persistence of wheel aggregates.
type WheelRepo interface {
	// CreateWheel inserts a new wheel row with a generated unique ID.
	CreateWheel(ctx context.Context, db *gorm.DB, names []string, creatorCountry string) (*domain.Wheel, error)

	// GetWheel fetches a wheel by its external unique ID.
	GetWheel(ctx context.Context, db *gorm.DB, uniqueID string) (*domain.Wheel, error)

	// TouchWheel advances last_accessed; missing wheels are a no-op.
	TouchWheel(ctx context.Context, db *gorm.DB, uniqueID string) error

	// UpdateWheelNames overwrites the name list of an existing wheel.
	UpdateWheelNames(ctx context.Context, db *gorm.DB, uniqueID string, names []string) error
}

// WheelService provides wheel-level operations: create with default-list
// fallback, lookup, last-access touching, and name updates with no-op
// semantics for blank submissions.
type WheelService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the wheel repository used by this service.
	Repo WheelRepo
}

// NewWheelService constructs a WheelService bound to db and r.
func NewWheelService(db *gorm.DB, r WheelRepo) *WheelService {
	return &WheelService{DB: db, Repo: r}
}

// Create inserts a new wheel from a raw submission. Names are trimmed and
// blanks dropped; an empty result falls back to domain.DefaultNames, so the
// stored list is never empty.
func (s *WheelService) Create(ctx context.Context, names []string, creatorCountry string) (*domain.Wheel, error) {
	names = normalizeNames(names)
	if len(names) == 0 {
		names = domain.DefaultNames
	}
	return s.Repo.CreateWheel(ctx, s.DB, names, creatorCountry)
}

// Get fetches a wheel by its external unique ID, returning ErrWheelNotFound
// when no such wheel exists.
func (s *WheelService) Get(ctx context.Context, uniqueID string) (*domain.Wheel, error) {
	w, err := s.Repo.GetWheel(ctx, s.DB, uniqueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWheelNotFound
		}
		return nil, err
	}
	return w, nil
}

// Touch advances last_accessed for uniqueID. Touching a missing wheel is
// not an error.
func (s *WheelService) Touch(ctx context.Context, uniqueID string) error {
	return s.Repo.TouchWheel(ctx, s.DB, uniqueID)
}

// UpdateNames overwrites a wheel's name list from a raw submission and
// returns the normalized list that was stored, so callers can render it
// without re-reading. A submission that is empty after normalization is a
// no-op edit: the stored list stays unchanged and the result is nil. Returns
// ErrWheelNotFound when the wheel does not exist.
func (s *WheelService) UpdateNames(ctx context.Context, uniqueID string, names []string) ([]string, error) {
	names = normalizeNames(names)
	if len(names) == 0 {
		return nil, nil
	}
	if err := s.Repo.UpdateWheelNames(ctx, s.DB, uniqueID, names); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWheelNotFound
		}
		return nil, err
	}
	return names, nil
}

// normalizeNames trims every entry and drops the blank ones, preserving
// submission order.
func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if t := strings.TrimSpace(n); t != "" {
			out = append(out, t)
		}
	}
	return out
}
