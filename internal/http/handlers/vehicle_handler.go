// Vehicle HTTP handlers.
//
// This file exposes REST endpoints for vehicle resources:
//   - GET    /vehicles        (enriched list)
//   - GET    /vehicles/{id}   (enriched single record)
//   - POST   /vehicles        (create)
//   - PUT    /vehicles/{id}   (update via field-level merge)
//   - DELETE /vehicles/{id}   (delete)
//
// Handlers are transport-thin: they validate input, call the aggregation
// service, and translate results into HTTP responses. Enrichment outcomes
// never change the status code — a record with an unavailable price is still
// a 200.
package handlers

import (
	"context"
	"errors"
	"strconv"

	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-vehicles-backend/internal/domain"
	"github.com/tbourn/go-vehicles-backend/internal/services"
)

//
// Service contract (context-aware)
//

// VehicleService defines the aggregation operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and must honor
// the provided context for cancellation and timeouts.
type VehicleService interface {
	// List returns every vehicle, enriched with price and address.
	List(ctx context.Context) ([]domain.Vehicle, error)
	// FindByID returns one enriched vehicle or services.ErrVehicleNotFound.
	FindByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	// Save creates (id==0) or merge-updates (id!=0) a vehicle.
	Save(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	// Delete removes a vehicle or returns services.ErrVehicleNotFound.
	Delete(ctx context.Context, id int64) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for vehicle resources. It depends on
// the abstract service interface to keep transport concerns separate from
// aggregation logic.
type Handlers struct {
	vehicleSvc VehicleService
}

// New constructs a Handlers instance bound to the given service.
func New(vehicleSvc VehicleService) *Handlers {
	return &Handlers{vehicleSvc: vehicleSvc}
}

//
// DTOs
//

// VehicleRequest is the JSON payload for creating or updating a vehicle.
// The id is always taken from the URL (update) or assigned by the store
// (create), never from the body.
type VehicleRequest struct {
	// Condition must be USED or NEW.
	Condition domain.Condition `json:"condition" binding:"required" example:"USED"`
	// Details describes the vehicle; copied wholesale on update.
	Details domain.Details `json:"details"`
	// Location carries the raw coordinates; address parts in the body are ignored.
	Location domain.Location `json:"location" binding:"required"`
	// Price is an optional last-known display price.
	Price string `json:"price,omitempty" example:"USD 10000.00"`
}

// vehicle maps the request payload onto a domain record with the given id.
func (r VehicleRequest) vehicle(id int64) *domain.Vehicle {
	return &domain.Vehicle{
		ID:        id,
		Condition: r.Condition,
		Details:   r.Details,
		Location: domain.Location{
			Lat: r.Location.Lat,
			Lon: r.Location.Lon,
		},
		Price: r.Price,
	}
}

//
// Helpers
//

// pathID parses the numeric {id} path parameter, failing the request with a
// 400 when it is not a positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "vehicle id must be a positive integer")
		return 0, false
	}
	return id, true
}

//
// Handlers
//

// ListVehicles godoc
// @ID          listVehicles
// @Summary     List vehicles
// @Description Returns every vehicle, each enriched with a fresh price and resolved address.
// @Tags        Vehicles
// @Produce     json
//
// @Success     200  {array}   domain.Vehicle
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /vehicles [get]
func (h *Handlers) ListVehicles(c *gin.Context) {
	vehicles, err := h.vehicleSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, vehicles)
}

// GetVehicle godoc
// @ID          getVehicle
// @Summary     Get a vehicle
// @Description Returns one vehicle, enriched with a fresh price and resolved address.
// @Tags        Vehicles
// @Produce     json
//
// @Param       id  path  int  true  "Vehicle ID"  minimum(1) example(1)
//
// @Success     200  {object}  domain.Vehicle
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Vehicle not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /vehicles/{id} [get]
func (h *Handlers) GetVehicle(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}

	v, err := h.vehicleSvc.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrVehicleNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "vehicle not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, v)
}

// CreateVehicle godoc
// @ID          createVehicle
// @Summary     Create a vehicle
// @Description Persists a new vehicle record and returns it with the assigned id. No enrichment happens on write.
// @Tags        Vehicles
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.VehicleRequest  true  "Vehicle payload"
//
// @Success     201  {object}  domain.Vehicle
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /vehicles [post]
func (h *Handlers) CreateVehicle(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	created, err := h.vehicleSvc.Save(c.Request.Context(), req.vehicle(0))
	if err != nil {
		if errors.Is(err, services.ErrInvalidCondition) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeSaveFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, created)
}

// UpdateVehicle godoc
// @ID          updateVehicle
// @Summary     Update a vehicle
// @Description Overwrites the stored record's details, location, condition, and price with the payload values. The merged record is returned.
// @Tags        Vehicles
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                      true  "Vehicle ID"  minimum(1) example(1)
// @Param       body  body  handlers.VehicleRequest  true  "Vehicle payload"
//
// @Success     200  {object}  domain.Vehicle
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Vehicle not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /vehicles/{id} [put]
func (h *Handlers) UpdateVehicle(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	merged, err := h.vehicleSvc.Save(c.Request.Context(), req.vehicle(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVehicleNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "vehicle not found")
		case errors.Is(err, services.ErrInvalidCondition):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeSaveFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, merged)
}

// DeleteVehicle godoc
// @ID          deleteVehicle
// @Summary     Delete a vehicle
// @Description Removes the vehicle from the store. Price rows in the pricing service are not cascaded.
// @Tags        Vehicles
// @Produce     json
//
// @Param       id  path  int  true  "Vehicle ID"  minimum(1) example(1)
//
// @Success     204  {string}  string                  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Vehicle not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /vehicles/{id} [delete]
func (h *Handlers) DeleteVehicle(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}

	if err := h.vehicleSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrVehicleNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "vehicle not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
		return
	}
	noContent(c)
}
