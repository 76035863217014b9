package pricing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-vehicles-backend/internal/http/handlers"
)

// Handler serves the read-only pricing endpoints.
type Handler struct {
	db *gorm.DB
}

// NewHandler builds a Handler on top of the given database handle.
func NewHandler(db *gorm.DB) *Handler { return &Handler{db: db} }

// RegisterRoutes mounts the pricing endpoints under /services.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	grp := r.Group("/services")
	grp.GET("/price", h.GetPrice)
	grp.GET("/prices", h.ListPrices)
}

// GetPrice godoc
// @Summary      Get the price of a vehicle
// @Description  Returns the quoted price for the given vehicle id.
// @Tags         prices
// @Produce      json
// @Param        vehicleId  query     int  true  "Vehicle ID"
// @Success      200  {object}  pricing.Price
// @Failure      400  {object}  handlers.ErrorResponse
// @Failure      404  {object}  handlers.ErrorResponse
// @Router       /services/price [get]
func (h *Handler) GetPrice(c *gin.Context) {
	raw := c.Query("vehicleId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		handlers.Fail(c, http.StatusBadRequest, "bad_request", "vehicleId must be a positive integer")
		return
	}

	p, err := GetPriceForVehicle(c.Request.Context(), h.db, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			handlers.Fail(c, http.StatusNotFound, "not_found", "no price for vehicle")
			return
		}
		handlers.Fail(c, http.StatusInternalServerError, "internal_error", "could not load price")
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListPrices godoc
// @Summary      List all vehicle prices
// @Tags         prices
// @Produce      json
// @Success      200  {array}   pricing.Price
// @Failure      500  {object}  handlers.ErrorResponse
// @Router       /services/prices [get]
func (h *Handler) ListPrices(c *gin.Context) {
	out, err := ListPrices(c.Request.Context(), h.db)
	if err != nil {
		handlers.Fail(c, http.StatusInternalServerError, "internal_error", "could not list prices")
		return
	}
	c.JSON(http.StatusOK, out)
}
