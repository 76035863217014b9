package pricing

import (
	"context"
	"errors"
	"math/rand"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound reports that no price exists for the requested vehicle.
var ErrNotFound = gorm.ErrRecordNotFound

// SeededVehicles is how many vehicle ids Seed populates, starting at 1.
const SeededVehicles = 20

// AutoMigrate creates or updates the prices table.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("pricing: nil db")
	}
	return db.AutoMigrate(&Price{})
}

// GetPriceForVehicle returns the price row for the given vehicle id.
// Returns ErrNotFound when the vehicle has no price.
func GetPriceForVehicle(ctx context.Context, db *gorm.DB, vehicleID int64) (*Price, error) {
	if db == nil {
		return nil, errors.New("pricing: nil db")
	}
	var p Price
	if err := db.WithContext(ctx).Where("vehicleid = ?", vehicleID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPrices returns every price row ordered by vehicle id.
func ListPrices(ctx context.Context, db *gorm.DB) ([]Price, error) {
	if db == nil {
		return nil, errors.New("pricing: nil db")
	}
	var out []Price
	if err := db.WithContext(ctx).Order("vehicleid asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Seed upserts prices for vehicle ids 1..SeededVehicles. Amounts are
// pseudo-random but derived from a fixed seed, so restarts quote the same
// numbers. Existing rows are left untouched.
func Seed(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("pricing: nil db")
	}
	rng := rand.New(rand.NewSource(1729))
	rows := make([]Price, 0, SeededVehicles)
	for id := int64(1); id <= SeededVehicles; id++ {
		amount := decimal.NewFromFloat(5000 + rng.Float64()*20000).Round(2)
		rows = append(rows, Price{Currency: "USD", Price: amount, VehicleID: id})
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vehicleid"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}
