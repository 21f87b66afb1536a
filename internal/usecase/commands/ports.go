package commands

import (
	"context"
	"time"

	"carrental/internal/domain/booking"
	"carrental/internal/domain/cartype"
	"carrental/internal/infra/repository"

	"github.com/google/uuid"
)

// BookingLedger is the durable source of truth for bookings. TryInsert is
// the only write path that creates a booking and the only place capacity is
// decided.
type BookingLedger interface {
	TryInsert(ctx context.Context, b *booking.Booking) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, b *booking.Booking, previous booking.Status) (bool, error)
	SweepStatuses(ctx context.Context, now time.Time) (occupied, finished int64, err error)
}

type CarTypeFinder interface {
	FindByID(ctx context.Context, id string) (*cartype.CarType, error)
}

// CallerDirectory resolves the authenticated principal and its
// verification status. Account issuance lives elsewhere.
type CallerDirectory interface {
	FindByEmail(ctx context.Context, email string) (*repository.UserRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (*repository.UserRecord, error)
}

// LicenseStorage stores a driver-license image with an external object
// store and returns an opaque key.
type LicenseStorage interface {
	Store(ctx context.Context, data []byte, filename, contentType string) (string, error)
}

// EmailSender delivers booking notifications. Callers treat delivery as
// best-effort.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
