package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidState  = errors.New("invalid state transition")
	ErrNegativePrice = errors.New("price cannot be negative")
)

// Booking is a reservation of one car of a given type over a window.
// Price fields are snapshots taken at creation; later car type price
// changes never alter an existing booking.
type Booking struct {
	id                    uuid.UUID
	userID                uuid.UUID
	typeID                string
	status                Status
	window                Window
	days                  int
	pricePerDayCents      int64
	totalCents            int64
	licenseKey            string
	carRegistrationNumber *string
	createdAt             time.Time
	updatedAt             time.Time
}

// NewBooking builds the draft handed to the capacity-guarded insert.
// It always starts in TO_CONFIRM; the ledger decides whether it exists.
func NewBooking(userID uuid.UUID, typeID string, window Window, pricePerDayCents int64, licenseKey string, now time.Time) (*Booking, error) {
	if pricePerDayCents < 0 {
		return nil, ErrNegativePrice
	}
	days := window.Days()
	return &Booking{
		id:               uuid.New(),
		userID:           userID,
		typeID:           typeID,
		status:           StatusToConfirm,
		window:           window,
		days:             days,
		pricePerDayCents: pricePerDayCents,
		totalCents:       pricePerDayCents * int64(days),
		licenseKey:       licenseKey,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func Reconstruct(
	id, userID uuid.UUID,
	typeID string,
	status Status,
	window Window,
	days int,
	pricePerDayCents, totalCents int64,
	licenseKey string,
	carRegistrationNumber *string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                    id,
		userID:                userID,
		typeID:                typeID,
		status:                status,
		window:                window,
		days:                  days,
		pricePerDayCents:      pricePerDayCents,
		totalCents:            totalCents,
		licenseKey:            licenseKey,
		carRegistrationNumber: carRegistrationNumber,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}
}

// Confirm moves TO_CONFIRM to OCCUPIED when now already falls inside the
// window, otherwise to BOOKED. Any other starting status is rejected.
func (b *Booking) Confirm(now time.Time, carRegistrationNumber string) error {
	if b.status != StatusToConfirm {
		return ErrInvalidState
	}
	if b.window.Contains(now) {
		b.status = StatusOccupied
	} else {
		b.status = StatusBooked
	}
	b.carRegistrationNumber = &carRegistrationNumber
	b.updatedAt = now
	return nil
}

func (b *Booking) Reject(now time.Time) error {
	if b.status != StatusToConfirm {
		return ErrInvalidState
	}
	b.status = StatusRejected
	b.updatedAt = now
	return nil
}

// Cancel is legal from any non-terminal status.
func (b *Booking) Cancel(now time.Time) error {
	if b.status.IsTerminal() {
		return ErrInvalidState
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

// StartOccupation flips a confirmed future booking to OCCUPIED once its
// window has started. Driven by the background sweeper.
func (b *Booking) StartOccupation(now time.Time) error {
	if b.status != StatusBooked || !b.window.Contains(now) {
		return ErrInvalidState
	}
	b.status = StatusOccupied
	b.updatedAt = now
	return nil
}

// Finish terminates a confirmed booking whose window has fully elapsed.
func (b *Booking) Finish(now time.Time) error {
	if b.status != StatusBooked && b.status != StatusOccupied {
		return ErrInvalidState
	}
	if !b.window.ElapsedBy(now) {
		return ErrInvalidState
	}
	b.status = StatusFinished
	b.updatedAt = now
	return nil
}

func (b *Booking) ID() uuid.UUID           { return b.id }
func (b *Booking) UserID() uuid.UUID       { return b.userID }
func (b *Booking) TypeID() string          { return b.typeID }
func (b *Booking) Status() Status          { return b.status }
func (b *Booking) Window() Window          { return b.window }
func (b *Booking) Days() int               { return b.days }
func (b *Booking) PricePerDayCents() int64 { return b.pricePerDayCents }
func (b *Booking) TotalCents() int64       { return b.totalCents }
func (b *Booking) LicenseKey() string      { return b.licenseKey }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time    { return b.updatedAt }

func (b *Booking) CarRegistrationNumber() *string {
	return b.carRegistrationNumber
}
