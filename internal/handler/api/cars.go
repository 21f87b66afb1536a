package api

import (
	"net/http"
	"time"

	"carrental/internal/domain/booking"
	"carrental/internal/handler/dto/request"
	"carrental/internal/handler/dto/response"
	"carrental/internal/handler/httperr"
	"carrental/internal/infra"
	"carrental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CarsHandler struct {
	carTypes     queries.CarTypeReader
	availability queries.AvailabilityQueries
}

func NewCarsHandler(carTypes queries.CarTypeReader, availability queries.AvailabilityQueries) *CarsHandler {
	return &CarsHandler{
		carTypes:     carTypes,
		availability: availability,
	}
}

// ListTypes godoc
// @Summary List car types
// @Description Returns the full rental catalog.
// @Tags cars
// @Produce json
// @Success 200 {array} response.CarTypeResponse
// @Router /api/cars/types [get]
func (h *CarsHandler) ListTypes(c *gin.Context) {
	types, err := h.carTypes.FindAll(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL_ERROR", "Failed to list car types")
		return
	}
	out := make([]response.CarTypeResponse, len(types))
	for i, ct := range types {
		out[i] = response.CarTypeFromDomain(ct)
	}
	c.JSON(http.StatusOK, out)
}

// GetType godoc
// @Summary Get one car type
// @Description Returns a catalog entry. When from/to are supplied the
// @Description response also carries availability and a price estimate
// @Description for that window.
// @Tags cars
// @Produce json
// @Param typeId path string true "Car type ID"
// @Param from query string false "Window start (RFC3339)"
// @Param to query string false "Window end (RFC3339)"
// @Param bypassCache query bool false "Skip the availability cache"
// @Success 200 {object} response.CarTypeDetailResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/cars/types/{typeId} [get]
func (h *CarsHandler) GetType(c *gin.Context) {
	var q request.TypeAvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	ct, err := h.carTypes.FindByID(c.Request.Context(), c.Param("typeId"))
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "NOT_FOUND", "Car type not found")
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL_ERROR", "Failed to load car type")
		return
	}

	resp := response.CarTypeDetailResponse{CarTypeResponse: response.CarTypeFromDomain(ct)}

	if q.HasWindow() {
		window, err := h.parseWindow(c, q.Parse)
		if err != nil {
			return
		}
		available, err := h.availability.ForType(c.Request.Context(), ct, window, q.BypassCache)
		if err != nil {
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL_ERROR", "Failed to compute availability")
			return
		}
		estimate := ct.EstimatedTotalCents(window.Days())
		resp.Available = &available
		resp.EstimatedTotalCents = &estimate
	}

	c.JSON(http.StatusOK, resp)
}

// Search godoc
// @Summary Search availability across all types
// @Description Returns free units and a price estimate per car type for
// @Description the requested window.
// @Tags cars
// @Produce json
// @Param from query string true "Window start (RFC3339)"
// @Param to query string true "Window end (RFC3339)"
// @Success 200 {object} response.CarSearchResponse
// @Failure 400 {object} httperr.Response
// @Router /api/cars/search [get]
func (h *CarsHandler) Search(c *gin.Context) {
	var q request.WindowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION_ERROR", "from and to are required")
		return
	}
	window, err := h.parseWindow(c, q.Parse)
	if err != nil {
		return
	}

	availability, err := h.availability.AllTypes(c.Request.Context(), window)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL_ERROR", "Failed to compute availability")
		return
	}
	types, err := h.carTypes.FindAll(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL_ERROR", "Failed to list car types")
		return
	}

	items := make([]response.CarSearchItem, 0, len(types))
	for _, ct := range types {
		items = append(items, response.CarSearchItem{
			CarTypeResponse:     response.CarTypeFromDomain(ct),
			Available:           availability[ct.ID()],
			EstimatedTotalCents: ct.EstimatedTotalCents(window.Days()),
		})
	}
	c.JSON(http.StatusOK, response.CarSearchResponse{
		From:  window.Start().Format(time.RFC3339),
		To:    window.End().Format(time.RFC3339),
		Items: items,
	})
}

// parseWindow validates the from/to pair and writes the 400 itself so
// callers can just return on error.
func (h *CarsHandler) parseWindow(c *gin.Context, parse func() (time.Time, time.Time, error)) (booking.Window, error) {
	from, to, err := parse()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION_ERROR", "Timestamps must be RFC3339")
		return booking.Window{}, err
	}
	window, err := booking.NewWindow(from, to)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION_ERROR", "to must be after from")
		return booking.Window{}, err
	}
	return window, nil
}
