// Package repo implements the data persistence layer for vehicle records,
// backed by GORM. This file provides repository functions for the Vehicle
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. In particular, no enrichment happens
// here — price and address lookups belong to the service layer.
//
// Error semantics:
//   - When a vehicle is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-vehicles-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateVehicle inserts a new vehicle row. The store assigns the primary key;
// the input's ID field must be zero. On success the persisted vehicle
// (including the assigned ID) is returned.
func CreateVehicle(ctx context.Context, db *gorm.DB, v *domain.Vehicle) (*domain.Vehicle, error) {
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

// ListVehicles returns every persisted vehicle in primary-key order (the
// store's natural enumeration order). It returns an empty slice when the
// store is empty. On DB error, it returns the error.
func ListVehicles(ctx context.Context, db *gorm.DB) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	err := db.WithContext(ctx).
		Order("id asc").
		Find(&out).Error
	return out, err
}

// GetVehicle fetches a single vehicle by ID. If the record does not exist,
// it returns ErrNotFound. On other DB errors, the raw error is returned.
func GetVehicle(ctx context.Context, db *gorm.DB, id int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateVehicle persists the full state of an existing vehicle row (matched
// on primary key). Callers are expected to pass a row previously loaded via
// GetVehicle with the replaceable fields already merged in.
func UpdateVehicle(ctx context.Context, db *gorm.DB, v *domain.Vehicle) (*domain.Vehicle, error) {
	if err := db.WithContext(ctx).Save(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

// DeleteVehicle removes the vehicle with the given ID. If no rows are
// affected (vehicle missing), it returns ErrNotFound. On DB error, the raw
// error is returned.
func DeleteVehicle(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).Delete(&domain.Vehicle{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountVehicles returns the total number of persisted vehicles.
// On DB error, it returns the error.
func CountVehicles(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Vehicle{}).
		Count(&total).Error
	return total, err
}
