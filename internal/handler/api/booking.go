package api

import (
	"errors"
	"io"
	"net/http"

	"carrental/internal/handler/dto/request"
	"carrental/internal/handler/dto/response"
	"carrental/internal/handler/httperr"
	"carrental/internal/handler/middleware"
	"carrental/internal/pkg/errs"
	"carrental/internal/usecase/commands"
	"carrental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxLicenseSize caps the uploaded license image at 8 MiB.
const maxLicenseSize = 8 << 20

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(cmd commands.BookingCommands, qry queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		commands: cmd,
		queries:  qry,
	}
}

// Create godoc
// @Summary Create a booking
// @Description Admits a booking if the type still has a free unit over
// @Description the requested window; rejects with 409 otherwise.
// @Tags bookings
// @Accept mpfd
// @Produce json
// @Param typeId formData string true "Car type ID"
// @Param start formData string true "Rental start (RFC3339)"
// @Param end formData string true "Rental end (RFC3339)"
// @Param driverLicense formData file true "Driving license image"
// @Success 201 {object} queries.BookingView
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Security BearerAuth
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	email, ok := middleware.GetPrincipalEmail(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, commands.ErrUserNotFound, "UNAUTHORIZED", "Authentication required")
		return
	}

	var form request.CreateBookingForm
	if err := c.ShouldBind(&form); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION_ERROR", "typeId, start and end are required")
		return
	}
	start, end, err := form.Window()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION_ERROR", "Timestamps must be RFC3339")
		return
	}

	fileHeader, err := c.FormFile("driverLicense")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION_ERROR", "driverLicense image is required")
		return
	}
	if fileHeader.Size > maxLicenseSize {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.New("license image too large"), "VALIDATION_ERROR", "License image exceeds 8 MiB")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION_ERROR", "Could not read license image")
		return
	}
	defer file.Close()
	license, err := io.ReadAll(io.LimitReader(file, maxLicenseSize))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION_ERROR", "Could not read license image")
		return
	}

	view, err := h.commands.Create(c.Request.Context(), commands.CreateBookingInput{
		TypeID:             form.TypeID,
		Start:              start,
		End:                end,
		PrincipalEmail:     email,
		License:            license,
		LicenseFilename:    fileHeader.Filename,
		LicenseContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		abortCommandError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetByID godoc
// @Summary Get a booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 404 {object} httperr.Response
// @Security BearerAuth
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) GetByID(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}
	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, queries.ErrBookingNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "NOT_FOUND", "Booking not found")
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL_ERROR", "Failed to load booking")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Cancel godoc
// @Summary Cancel a booking
// @Description Cancels any booking that has not reached a terminal state.
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.BookingStatusResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Security BearerAuth
// @Router /api/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}
	status, err := h.commands.Cancel(c.Request.Context(), id)
	if err != nil {
		abortCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.BookingStatusResponse{
		BookingID: id.String(),
		Status:    status.String(),
	})
}

// abortCommandError maps command sentinels to the wire error contract.
// Shared by the customer and admin booking handlers. Sentinels are
// attached with errs.Mark, so matching goes through errs.Is.
func abortCommandError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrInvalidWindow):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION_ERROR", "Invalid booking window")
	case errs.Is(err, commands.ErrCarTypeNotFound):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION_ERROR", "Unknown car type")
	case errs.Is(err, commands.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "NOT_FOUND", "Booking not found")
	case errs.Is(err, commands.ErrUserNotFound):
		httperr.AbortWithError(c, http.StatusForbidden, err, "UNKNOWN_USER", "No account for this identity")
	case errs.Is(err, commands.ErrUserNotVerified):
		httperr.AbortWithError(c, http.StatusForbidden, err, "EMAIL_NOT_VERIFIED", "Email address is not verified")
	case errs.Is(err, commands.ErrNoAvailability):
		httperr.AbortWithError(c, http.StatusConflict, err, "NO_AVAILABILITY", "No cars available for the requested range")
	case errs.Is(err, commands.ErrInvalidState):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_STATE", "Booking is not in a state that allows this operation")
	case errs.Is(err, commands.ErrLicenseUploadFailed):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "UPLOAD_FAILED", "License upload failed")
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL_ERROR", "Internal server error")
	}
}

func parseBookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION_ERROR", "Booking id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
