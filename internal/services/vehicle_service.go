// Package services – VehicleService
//
// This file implements VehicleService, the aggregation component at the core
// of the vehicles API. It composes three collaborators: the vehicle record
// store, the pricing service client, and the geocoding client. Read paths
// (List, FindByID) enrich every returned record with a freshly looked-up
// price and a resolved street address; write paths (Save, Delete) never
// touch the external services.
//
// Failure policy: enrichment errors are absorbed here and replaced with
// fallback values (placeholder price, unresolved coordinates) — a read never
// fails because an external provider is down. Store errors propagate, except
// that a missing row is converted into the domain-level ErrVehicleNotFound.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// carry the vehicle id where applicable.
package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/rs/zerolog/log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-vehicles-backend/internal/clients/maps"
	"github.com/tbourn/go-vehicles-backend/internal/domain"
	"github.com/tbourn/go-vehicles-backend/internal/repo"
)

// PriceUnavailable is the placeholder attached to a record when the pricing
// lookup fails or no price is on file. It is never persisted by read paths.
const PriceUnavailable = "(price unavailable)"

// defaultEnrichWorkers bounds concurrent record enrichment during List when
// no explicit limit is configured, so large lists neither serialize external
// latency nor flood the providers.
const defaultEnrichWorkers = 8

// VehicleRepo defines the repository contract required by VehicleService.
// Implementations are responsible for persistence of vehicle records and
// must return repo.ErrNotFound for missing ids.
type VehicleRepo interface {
	// CreateVehicle inserts a new row; the store assigns the id.
	CreateVehicle(ctx context.Context, db *gorm.DB, v *domain.Vehicle) (*domain.Vehicle, error)

	// ListVehicles returns every row in the store's natural enumeration order.
	ListVehicles(ctx context.Context, db *gorm.DB) ([]domain.Vehicle, error)

	// GetVehicle fetches one row by id.
	GetVehicle(ctx context.Context, db *gorm.DB, id int64) (*domain.Vehicle, error)

	// UpdateVehicle persists the full state of an existing row.
	UpdateVehicle(ctx context.Context, db *gorm.DB, v *domain.Vehicle) (*domain.Vehicle, error)

	// DeleteVehicle removes a row by id.
	DeleteVehicle(ctx context.Context, db *gorm.DB, id int64) error
}

// PriceLookup is the capability consumed for price enrichment. Any transport
// can implement it; tests substitute fakes.
type PriceLookup interface {
	// GetPrice returns a display string ("USD 10000.00") for the vehicle.
	GetPrice(ctx context.Context, vehicleID int64) (string, error)
}

// AddressResolver is the capability consumed for location enrichment.
type AddressResolver interface {
	// ResolveAddress turns raw coordinates into a street address.
	ResolveAddress(ctx context.Context, lat, lon float64) (maps.Address, error)
}

// VehicleService orchestrates the record store and the two enrichment
// collaborators. It holds no cache and no cross-call state; the handles are
// stateless facades, so the service is safe for concurrent use.
type VehicleService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the vehicle repository used by this service.
	Repo VehicleRepo
	// Prices looks up the current price per vehicle id.
	Prices PriceLookup
	// Maps resolves coordinates into street addresses.
	Maps AddressResolver

	// EnrichWorkers caps concurrent record enrichment in List.
	// Values < 1 fall back to a sane default.
	EnrichWorkers int
}

// NewVehicleService constructs a VehicleService with the default enrichment
// concurrency.
func NewVehicleService(db *gorm.DB, r VehicleRepo, prices PriceLookup, maps AddressResolver) *VehicleService {
	return &VehicleService{
		DB:            db,
		Repo:          r,
		Prices:        prices,
		Maps:          maps,
		EnrichWorkers: defaultEnrichWorkers,
	}
}

// List returns every persisted vehicle, each enriched with a fresh price and
// resolved address. The slice preserves the store's enumeration order.
//
// Enrichment of one record is independent of every other record's, so records
// are enriched on a bounded worker pool. If ctx is cancelled mid-list,
// enrichment of records not yet started is skipped and the cancellation is
// reported.
func (s *VehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	tr := otel.Tracer("services/VehicleService")
	ctx, span := tr.Start(ctx, "List")
	defer span.End()

	vehicles, err := s.Repo.ListVehicles(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("vehicles.count", len(vehicles)))

	workers := s.EnrichWorkers
	if workers < 1 {
		workers = defaultEnrichWorkers
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range vehicles {
		// Do not start enrichment for remaining records once cancelled;
		// in-flight calls finish on their own and are discarded.
		if err := gctx.Err(); err != nil {
			return nil, err
		}
		v := &vehicles[i]
		g.Go(func() error {
			s.enrich(gctx, v)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// FindByID returns the vehicle with the given id, enriched exactly as in
// List. It returns ErrVehicleNotFound when no such record exists.
func (s *VehicleService) FindByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	tr := otel.Tracer("services/VehicleService")
	ctx, span := tr.Start(ctx, "FindByID",
		trace.WithAttributes(attribute.Int64("vehicle.id", id)),
	)
	defer span.End()

	v, err := s.Repo.GetVehicle(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	s.enrich(ctx, v)
	return v, nil
}

// Save creates or updates a vehicle. No enrichment is performed on write.
//
// A zero id is a create: the store assigns a new id and the record is
// persisted as given. A nonzero id is an update: the stored row is loaded
// first (ErrVehicleNotFound when absent) and its replaceable fields —
// details, location, condition, price — are each overwritten wholesale with
// the incoming values. The merged row, not the caller's raw input, is
// persisted and returned; store-owned fields (timestamps, soft-delete
// marker) survive untouched.
//
// The existence check and the write are two steps, not one transaction:
// concurrent updates of the same id are last-writer-wins.
func (s *VehicleService) Save(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	tr := otel.Tracer("services/VehicleService")
	ctx, span := tr.Start(ctx, "Save",
		trace.WithAttributes(attribute.Int64("vehicle.id", v.ID)),
	)
	defer span.End()

	if !v.Condition.Valid() {
		return nil, ErrInvalidCondition
	}

	if v.ID == 0 {
		return s.Repo.CreateVehicle(ctx, s.DB, v)
	}

	existing, err := s.Repo.GetVehicle(ctx, s.DB, v.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}

	// Field-level merge: replaceable fields only, each copied wholesale.
	existing.Details = v.Details
	existing.Location = v.Location
	existing.Condition = v.Condition
	existing.Price = v.Price

	return s.Repo.UpdateVehicle(ctx, s.DB, existing)
}

// Delete removes the vehicle with the given id, returning ErrVehicleNotFound
// when it does not exist. The pricing service keeps its own price rows;
// deleting a vehicle does not cascade there.
func (s *VehicleService) Delete(ctx context.Context, id int64) error {
	tr := otel.Tracer("services/VehicleService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int64("vehicle.id", id)),
	)
	defer span.End()

	if _, err := s.Repo.GetVehicle(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}
	if err := s.Repo.DeleteVehicle(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}
	return nil
}

// enrich attaches a fresh price and resolved address to v in place. The two
// lookups have no ordering dependency and run concurrently; each client owns
// its own timeout. Failures are logged and absorbed: the price falls back to
// PriceUnavailable and the location keeps its raw coordinates.
func (s *VehicleService) enrich(ctx context.Context, v *domain.Vehicle) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		price, err := s.Prices.GetPrice(gctx, v.ID)
		if err != nil {
			log.Warn().Err(err).Int64("vehicle_id", v.ID).Msg("price lookup failed")
			v.Price = PriceUnavailable
			return nil
		}
		v.Price = price
		return nil
	})

	g.Go(func() error {
		addr, err := s.Maps.ResolveAddress(gctx, v.Location.Lat, v.Location.Lon)
		if err != nil {
			log.Warn().Err(err).Int64("vehicle_id", v.ID).Msg("address resolution failed")
			return nil
		}
		v.Location.Address = addr.Address
		v.Location.City = addr.City
		v.Location.State = addr.State
		v.Location.Zip = addr.Zip
		return nil
	})

	// Both goroutines absorb their errors, so Wait only synchronizes.
	_ = g.Wait()
}
