// Package pricing implements the standalone price lookup service: a small
// catalogue of per-vehicle prices persisted in SQLite and exposed over two
// read-only HTTP endpoints. The vehicles backend consumes it through
// internal/clients/prices.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price is the quoted price of a single vehicle, including currency.
type Price struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Currency  string          `gorm:"size:8;not null" json:"currency"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	VehicleID int64           `gorm:"column:vehicleid;uniqueIndex;not null" json:"vehicleId"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

// TableName pins the table name so renaming the struct never migrates data away.
func (Price) TableName() string { return "prices" }
