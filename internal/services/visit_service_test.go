package services

import (
	"context"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-wheel-backend/internal/domain"
	"github.com/tbourn/go-wheel-backend/internal/geo"
	"github.com/tbourn/go-wheel-backend/internal/repo"
)

type testVisitRepo struct{}

func (testVisitRepo) CreateVisit(ctx context.Context, db *gorm.DB, v *domain.Visit) error {
	return repo.CreateVisit(ctx, db, v)
}

func TestVisitService_Record_PersistsEnrichedVisit(t *testing.T) {
	db := newServiceDB(t)
	svc := NewVisitService(db, testVisitRepo{}, geo.Static{Country: "Greece"})

	wid := "wheel001"
	svc.Record(context.Background(), "203.0.113.7", "test-agent", domain.VisitWheelAccess, &wid)

	var got domain.Visit
	if err := db.First(&got).Error; err != nil {
		t.Fatalf("load visit: %v", err)
	}
	if got.IPAddress != "203.0.113.7" || got.Country != "Greece" || got.VisitType != domain.VisitWheelAccess {
		t.Fatalf("unexpected visit: %+v", got)
	}
	if got.WheelID == nil || *got.WheelID != "wheel001" {
		t.Fatalf("wheel_id not persisted: %+v", got.WheelID)
	}
	if got.VisitedAt.IsZero() {
		t.Fatalf("visited_at not set")
	}
}

func TestVisitService_Record_TruncatesUserAgent(t *testing.T) {
	db := newServiceDB(t)
	svc := NewVisitService(db, testVisitRepo{}, geo.Static{})

	long := strings.Repeat("x", 500)
	svc.Record(context.Background(), "203.0.113.7", long, domain.VisitHomepage, nil)

	var got domain.Visit
	if err := db.First(&got).Error; err != nil {
		t.Fatalf("load visit: %v", err)
	}
	if len(got.UserAgent) != domain.MaxUserAgentLen {
		t.Fatalf("expected %d-char user agent, got %d", domain.MaxUserAgentLen, len(got.UserAgent))
	}
}

func TestVisitService_Record_SwallowsStoreFailure(t *testing.T) {
	// No migrations: the insert fails, and Record must not panic or surface it.
	db := newServiceDB(t)
	if err := db.Migrator().DropTable(&domain.Visit{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}
	svc := NewVisitService(db, testVisitRepo{}, geo.Static{})

	svc.Record(context.Background(), "203.0.113.7", "ua", domain.VisitHomepage, nil)
}

func TestVisitService_Record_UnknownCountryFallback(t *testing.T) {
	db := newServiceDB(t)
	svc := NewVisitService(db, testVisitRepo{}, geo.Static{})

	svc.Record(context.Background(), "203.0.113.7", "ua", domain.VisitHomepage, nil)

	var got domain.Visit
	if err := db.First(&got).Error; err != nil {
		t.Fatalf("load visit: %v", err)
	}
	if got.Country != geo.Unknown {
		t.Fatalf("expected %q, got %q", geo.Unknown, got.Country)
	}
}
