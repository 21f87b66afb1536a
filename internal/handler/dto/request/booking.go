package request

import (
	"time"

	"carrental/internal/pkg/errs"
)

var ErrBadTimestamp = errs.New("timestamps must be RFC3339")

// CreateBookingForm is the multipart body of the booking request. The
// license image travels as the "driverLicense" file part and is read by
// the handler.
type CreateBookingForm struct {
	TypeID string `form:"typeId" binding:"required"`
	Start  string `form:"start" binding:"required"`
	End    string `form:"end" binding:"required"`
}

func (f CreateBookingForm) Window() (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, f.Start)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Mark(err, ErrBadTimestamp)
	}
	end, err := time.Parse(time.RFC3339, f.End)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Mark(err, ErrBadTimestamp)
	}
	return start, end, nil
}

// WindowQuery is the from/to pair shared by search, availability and
// stats endpoints.
type WindowQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

func (q WindowQuery) Parse() (time.Time, time.Time, error) {
	from, err := time.Parse(time.RFC3339, q.From)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Mark(err, ErrBadTimestamp)
	}
	to, err := time.Parse(time.RFC3339, q.To)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Mark(err, ErrBadTimestamp)
	}
	return from, to, nil
}

type TypeAvailabilityQuery struct {
	From        string `form:"from"`
	To          string `form:"to"`
	BypassCache bool   `form:"bypassCache"`
}

func (q TypeAvailabilityQuery) HasWindow() bool {
	return q.From != "" && q.To != ""
}

func (q TypeAvailabilityQuery) Parse() (time.Time, time.Time, error) {
	return WindowQuery{From: q.From, To: q.To}.Parse()
}

type AdminBookingListQuery struct {
	Status string `form:"status"`
	From   string `form:"from" binding:"required"`
	To     string `form:"to" binding:"required"`
}

func (q AdminBookingListQuery) Parse() (time.Time, time.Time, error) {
	return WindowQuery{From: q.From, To: q.To}.Parse()
}

type ConfirmBookingRequest struct {
	CarRegistrationNumber string `json:"carRegistrationNumber" binding:"required"`
}
