// Package domain defines the persistence model for vehicle records. The
// Vehicle type is mapped with GORM and forms the core data layer of the
// vehicles API; transient fields (price, resolved address parts) are
// populated at read time by the aggregation service and never trusted from
// a stale row.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Condition is the enumerated state of a vehicle.
type Condition string

// Allowed Condition values.
const (
	ConditionUsed Condition = "USED"
	ConditionNew  Condition = "NEW"
)

// Valid reports whether c is one of the allowed condition values.
func (c Condition) Valid() bool {
	return c == ConditionUsed || c == ConditionNew
}

// Details is the structured description of a vehicle. The aggregation layer
// treats it as opaque: it is copied wholesale on update, never merged
// field-by-field inside.
type Details struct {
	Body           string `json:"body"           gorm:"type:varchar(32)"`
	Model          string `json:"model"          gorm:"type:varchar(64)"`
	Manufacturer   string `json:"manufacturer"   gorm:"type:varchar(64)"`
	NumberOfDoors  int    `json:"numberOfDoors"`
	FuelType       string `json:"fuelType"       gorm:"type:varchar(32)"`
	Engine         string `json:"engine"         gorm:"type:varchar(64)"`
	Mileage        int    `json:"mileage"`
	ModelYear      int    `json:"modelYear"`
	ProductionYear int    `json:"productionYear"`
	ExternalColor  string `json:"externalColor"  gorm:"type:varchar(32)"`
}

// Location is a coordinate pair plus the human-readable address parts
// attached by the geocoding resolver. Only the coordinates are persisted;
// the address fields are refreshed on every read and stay empty when the
// resolver is unavailable.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	// Resolver output, transient.
	Address string `json:"address,omitempty" gorm:"-"`
	City    string `json:"city,omitempty"    gorm:"-"`
	State   string `json:"state,omitempty"   gorm:"-"`
	Zip     string `json:"zip,omitempty"     gorm:"-"`
}

// Vehicle represents one vehicle record. A zero ID marks a not-yet-persisted
// record; the store assigns the ID on first save.
//
// Fields:
//   - ID: auto-incremented primary key, store-assigned.
//   - Condition: USED or NEW (enforced by DB constraint).
//   - Details: embedded structured description, replaced wholesale on update.
//   - Location: embedded coordinates; address parts are transient.
//   - Price: display string ("USD 10000.00"). The column keeps the last
//     value a caller saved, but reads always overwrite it with a fresh
//     lookup (or a placeholder when pricing is unavailable).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker (retains row for audit/history).
type Vehicle struct {
	ID        int64          `json:"id"        gorm:"primaryKey;autoIncrement"`
	Condition Condition      `json:"condition" gorm:"type:varchar(8);not null;check:condition IN ('USED','NEW')"`
	Details   Details        `json:"details"   gorm:"embedded;embeddedPrefix:details_"`
	Location  Location       `json:"location"  gorm:"embedded;embeddedPrefix:location_"`
	Price     string         `json:"price"     gorm:"type:varchar(32)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"         gorm:"index"`
}

// TableName returns the database table name for Vehicle.
func (Vehicle) TableName() string { return "vehicles" }
