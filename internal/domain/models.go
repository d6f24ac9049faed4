// Package domain defines the persistence models for wheels and visits.
// These types are mapped with GORM and form the core data layer of the
// wheel application.
package domain

import (
	"encoding/json"
	"time"
)

// DefaultNames is the fallback entry list applied when a wheel is created
// from an empty or all-blank submission.
var DefaultNames = []string{"Alice", "Bob", "Charlie", "Diana"}

// Visit types recorded by the tracking layer.
const (
	VisitHomepage     = "homepage"
	VisitWheelCreated = "wheel_created"
	VisitWheelAccess  = "wheel_access"
)

// MaxUserAgentLen caps the stored user agent, in runes.
const MaxUserAgentLen = 200

// Wheel represents a shareable ordered list of names. It is addressed
// externally only by UniqueID; the numeric primary key never leaves the
// store.
//
// Fields:
//   - ID: auto-increment surrogate key, internal only.
//   - UniqueID: 8-character external identifier (truncated random UUID),
//     immutable after creation.
//   - Names: the entry list, serialized as a JSON array; never empty.
//   - NameCount: cached len(Names), kept in sync on every write.
//   - CreatorCountry: country resolved from the creator's IP at creation
//     time; immutable afterwards.
//   - CreatedAt: set once at insert time.
//   - LastAccessed: advanced on every view or edit.
type Wheel struct {
	ID             uint      `json:"-"               gorm:"primaryKey;autoIncrement"`
	UniqueID       string    `json:"unique_id"       gorm:"type:char(8);not null;uniqueIndex:ux_wheels_unique_id"`
	Names          string    `json:"-"               gorm:"type:text;not null"`
	NameCount      int       `json:"name_count"      gorm:"not null"`
	CreatorCountry string    `json:"creator_country" gorm:"type:varchar(64);not null;default:'Unknown'"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessed   time.Time `json:"last_accessed"`
}

// TableName returns the database table name for Wheel.
func (Wheel) TableName() string { return "wheels" }

// NameList decodes the stored JSON array into a string slice. A decode
// failure yields an empty slice; rows are only ever written through
// SetNames, so in practice the column always holds a valid array.
func (w *Wheel) NameList() []string {
	var names []string
	if err := json.Unmarshal([]byte(w.Names), &names); err != nil {
		return []string{}
	}
	return names
}

// SetNames encodes names into the Names column and syncs NameCount.
func (w *Wheel) SetNames(names []string) error {
	raw, err := json.Marshal(names)
	if err != nil {
		return err
	}
	w.Names = string(raw)
	w.NameCount = len(names)
	return nil
}

// Visit is an append-only audit record of a single tracked request. It is
// never updated or deleted by the application.
//
// WheelID holds the referenced wheel's external UniqueID, or nil for
// homepage visits. The relation is intentionally not FK-enforced: visits
// are an audit log and must survive independently of wheel rows.
type Visit struct {
	ID        uint      `json:"-"          gorm:"primaryKey;autoIncrement"`
	IPAddress string    `json:"ip_address" gorm:"type:varchar(45);not null;index:idx_visits_ip"`
	Country   string    `json:"country"    gorm:"type:varchar(64);not null;default:'Unknown'"`
	UserAgent string    `json:"user_agent" gorm:"type:varchar(200)"`
	WheelID   *string   `json:"wheel_id"   gorm:"type:char(8);index:idx_visits_wheel"`
	VisitType string    `json:"visit_type" gorm:"type:varchar(16);not null;check:visit_type IN ('homepage','wheel_created','wheel_access')"`
	VisitedAt time.Time `json:"visited_at" gorm:"index:idx_visits_time"`
}

// TableName returns the database table name for Visit.
func (Visit) TableName() string { return "visits" }
