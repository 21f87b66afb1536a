package api

import (
	"net/http"
	"time"

	"carrental/internal/domain/booking"
	"carrental/internal/handler/dto/request"
	"carrental/internal/handler/dto/response"
	"carrental/internal/handler/httperr"
	"carrental/internal/pkg/errs"
	"carrental/internal/usecase/commands"
	"carrental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	commands commands.BookingCommands
	bookings queries.BookingQueries
	stats    queries.StatsQueries
}

func NewAdminHandler(cmd commands.BookingCommands, bookings queries.BookingQueries, stats queries.StatsQueries) *AdminHandler {
	return &AdminHandler{
		commands: cmd,
		bookings: bookings,
		stats:    stats,
	}
}

// ListBookings godoc
// @Summary List bookings in a window
// @Description Returns bookings overlapping [from, to), optionally
// @Description filtered by status, with customer contact details.
// @Tags admin
// @Produce json
// @Param status query string false "Status filter"
// @Param from query string true "Window start (RFC3339)"
// @Param to query string true "Window end (RFC3339)"
// @Success 200 {object} response.AdminBookingListResponse
// @Failure 400 {object} httperr.Response
// @Security BearerAuth
// @Router /api/admin/bookings [get]
func (h *AdminHandler) ListBookings(c *gin.Context) {
	var q request.AdminBookingListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION_ERROR", "from and to are required")
		return
	}
	from, to, err := q.Parse()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION_ERROR", "Timestamps must be RFC3339")
		return
	}

	var status *booking.Status
	if q.Status != "" {
		s := booking.Status(q.Status)
		if !s.IsValid() {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.New("unknown status"), "VALIDATION_ERROR", "Unknown booking status")
			return
		}
		status = &s
	}

	items, err := h.bookings.ListForAdmin(c.Request.Context(), status, from, to)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, response.AdminBookingListResponse{
		Items: items,
		Count: len(items),
	})
}

// ConfirmBooking godoc
// @Summary Confirm a booking
// @Description Assigns a car and moves the booking to BOOKED, or straight
// @Description to OCCUPIED when the rental window has already started.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param body body request.ConfirmBookingRequest true "Assignment"
// @Success 200 {object} response.ConfirmBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Security BearerAuth
// @Router /api/admin/bookings/{id}/confirm [post]
func (h *AdminHandler) ConfirmBooking(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}
	var req request.ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION_ERROR", "carRegistrationNumber is required")
		return
	}

	result, err := h.commands.Confirm(c.Request.Context(), id, req.CarRegistrationNumber)
	if err != nil {
		abortCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ConfirmBookingResponse{
		BookingID:             id.String(),
		Status:                result.Status.String(),
		CarRegistrationNumber: result.CarRegistrationNumber,
	})
}

// RejectBooking godoc
// @Summary Reject a booking
// @Description Rejects a booking still awaiting confirmation.
// @Tags admin
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.BookingStatusResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Security BearerAuth
// @Router /api/admin/bookings/{id}/reject [post]
func (h *AdminHandler) RejectBooking(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}
	status, err := h.commands.Reject(c.Request.Context(), id)
	if err != nil {
		abortCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.BookingStatusResponse{
		BookingID: id.String(),
		Status:    status.String(),
	})
}

// Stats godoc
// @Summary Utilization per car type
// @Description Returns booked hours and past utilization per type over
// @Description the reporting window.
// @Tags admin
// @Produce json
// @Param from query string true "Window start (RFC3339)"
// @Param to query string true "Window end (RFC3339)"
// @Success 200 {object} response.StatsResponse
// @Failure 400 {object} httperr.Response
// @Security BearerAuth
// @Router /api/admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	var q request.WindowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION_ERROR", "from and to are required")
		return
	}
	from, to, err := q.Parse()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION_ERROR", "Timestamps must be RFC3339")
		return
	}
	window, err := booking.NewWindow(from, to)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION_ERROR", "to must be after from")
		return
	}

	items, err := h.stats.UtilizationByType(c.Request.Context(), window)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL_ERROR", "Failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, response.StatsResponse{
		From:  window.Start().Format(time.RFC3339),
		To:    window.End().Format(time.RFC3339),
		Items: items,
	})
}