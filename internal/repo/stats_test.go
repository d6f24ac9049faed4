package repo

import (
	"context"
	"testing"
	"time"

	"github.com/tbourn/go-wheel-backend/internal/domain"
	"gorm.io/gorm"
)

func seedVisit(t *testing.T, db *gorm.DB, ip, country, visitType string, wheelID *string, at time.Time) {
	t.Helper()
	v := domain.Visit{
		IPAddress: ip,
		Country:   country,
		UserAgent: "test-agent",
		WheelID:   wheelID,
		VisitType: visitType,
		VisitedAt: at,
	}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("seed visit: %v", err)
	}
}

func TestCreateVisit_SetsVisitedAtWhenZero(t *testing.T) {
	db := newWheelRepoDB(t, &domain.Visit{})

	start := time.Now().UTC().Add(-time.Minute)
	v := &domain.Visit{IPAddress: "203.0.113.1", Country: "Unknown", VisitType: domain.VisitHomepage}
	if err := CreateVisit(context.Background(), db, v); err != nil {
		t.Fatalf("CreateVisit: %v", err)
	}
	if v.VisitedAt.Before(start) {
		t.Fatalf("VisitedAt seems unset: %v", v.VisitedAt)
	}
}

func TestCreateVisit_Error_NoTable(t *testing.T) {
	db := newWheelRepoDB(t /* no migrations */)
	v := &domain.Visit{IPAddress: "203.0.113.1", Country: "Unknown", VisitType: domain.VisitHomepage}
	if err := CreateVisit(context.Background(), db, v); err == nil {
		t.Fatalf("expected error when table missing")
	}
}

func TestDistinctVisitors_CountsUniqueIPs(t *testing.T) {
	db := newWheelRepoDB(t, &domain.Visit{})
	now := time.Now().UTC()

	seedVisit(t, db, "203.0.113.1", "Greece", domain.VisitHomepage, nil, now)
	seedVisit(t, db, "203.0.113.1", "Greece", domain.VisitHomepage, nil, now)
	seedVisit(t, db, "203.0.113.2", "France", domain.VisitHomepage, nil, now)

	n, err := DistinctVisitors(context.Background(), db)
	if err != nil {
		t.Fatalf("DistinctVisitors: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 distinct IPs, got %d", n)
	}

	total, err := CountVisits(context.Background(), db)
	if err != nil {
		t.Fatalf("CountVisits: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 visits, got %d", total)
	}
}

func TestDistinctVisitorsSince_InclusiveBoundary(t *testing.T) {
	db := newWheelRepoDB(t, &domain.Visit{})
	cutoff := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	seedVisit(t, db, "203.0.113.1", "Greece", domain.VisitHomepage, nil, cutoff.Add(-time.Hour)) // outside
	seedVisit(t, db, "203.0.113.2", "France", domain.VisitHomepage, nil, cutoff)                 // boundary counts
	seedVisit(t, db, "203.0.113.3", "Japan", domain.VisitHomepage, nil, cutoff.Add(time.Hour))  // inside

	n, err := DistinctVisitorsSince(context.Background(), db, cutoff)
	if err != nil {
		t.Fatalf("DistinctVisitorsSince: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 (boundary inclusive), got %d", n)
	}
}

func TestRecentWheels_LeftJoinAndOrder(t *testing.T) {
	db := newWheelRepoDB(t, &domain.Wheel{}, &domain.Visit{})

	t1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)
	for _, w := range []domain.Wheel{
		{UniqueID: "wheel001", Names: `["A"]`, NameCount: 1, CreatorCountry: "Greece", CreatedAt: t1, LastAccessed: t1},
		{UniqueID: "wheel002", Names: `["B"]`, NameCount: 1, CreatorCountry: "France", CreatedAt: t2, LastAccessed: t2},
		{UniqueID: "wheel003", Names: `["C"]`, NameCount: 1, CreatorCountry: "Japan", CreatedAt: t3, LastAccessed: t3},
	} {
		if err := db.Create(&w).Error; err != nil {
			t.Fatalf("seed %s: %v", w.UniqueID, err)
		}
	}

	// wheel002: two distinct IPs (one repeated); wheel003: none.
	w2 := "wheel002"
	seedVisit(t, db, "203.0.113.1", "Greece", domain.VisitWheelAccess, &w2, t2)
	seedVisit(t, db, "203.0.113.1", "Greece", domain.VisitWheelAccess, &w2, t2)
	seedVisit(t, db, "203.0.113.2", "France", domain.VisitWheelAccess, &w2, t2)
	w1 := "wheel001"
	seedVisit(t, db, "203.0.113.9", "Japan", domain.VisitWheelAccess, &w1, t1)

	out, err := RecentWheels(context.Background(), db, 50)
	if err != nil {
		t.Fatalf("RecentWheels: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 wheels, got %d", len(out))
	}
	// Newest first: wheel003, wheel002, wheel001
	if out[0].UniqueID != "wheel003" || out[1].UniqueID != "wheel002" || out[2].UniqueID != "wheel001" {
		t.Fatalf("unexpected order: %+v", out)
	}
	if out[0].VisitorCount != 0 {
		t.Fatalf("wheel with no visits must report 0, got %d", out[0].VisitorCount)
	}
	if out[1].VisitorCount != 2 {
		t.Fatalf("expected 2 distinct visitors for wheel002, got %d", out[1].VisitorCount)
	}
	if out[2].VisitorCount != 1 {
		t.Fatalf("expected 1 visitor for wheel001, got %d", out[2].VisitorCount)
	}
}

func TestRecentWheels_LimitApplied(t *testing.T) {
	db := newWheelRepoDB(t, &domain.Wheel{}, &domain.Visit{})

	base := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		w := domain.Wheel{
			UniqueID:     NewUniqueID(),
			Names:        `["A"]`,
			NameCount:    1,
			CreatedAt:    base.Add(time.Duration(i) * time.Second),
			LastAccessed: base,
		}
		if err := db.Create(&w).Error; err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	out, err := RecentWheels(context.Background(), db, 2)
	if err != nil {
		t.Fatalf("RecentWheels: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(out))
	}
}

func TestCountryBreakdown_OrderedDescendingWithLimit(t *testing.T) {
	db := newWheelRepoDB(t, &domain.Visit{})
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		seedVisit(t, db, "203.0.113.1", "Greece", domain.VisitHomepage, nil, now)
	}
	for i := 0; i < 2; i++ {
		seedVisit(t, db, "203.0.113.2", "France", domain.VisitHomepage, nil, now)
	}
	seedVisit(t, db, "203.0.113.3", "Japan", domain.VisitHomepage, nil, now)

	out, err := CountryBreakdown(context.Background(), db, 2)
	if err != nil {
		t.Fatalf("CountryBreakdown: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(out))
	}
	if out[0].Country != "Greece" || out[0].Visits != 3 {
		t.Fatalf("unexpected first row: %+v", out[0])
	}
	if out[1].Country != "France" || out[1].Visits != 2 {
		t.Fatalf("unexpected second row: %+v", out[1])
	}
}
