package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"carrental/internal/domain/booking"
	"carrental/internal/infra"
	"carrental/internal/pkg/clock"
	"carrental/internal/pkg/errs"
	"carrental/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrCarTypeNotFound         = errs.New("car type not found")
	ErrInvalidWindow           = errs.New("invalid booking window")
	ErrNoAvailability          = errs.New("no cars available for the requested range")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrUserNotFound            = errs.New("user not found")
	ErrUserNotVerified         = errs.New("user email is not verified")
	ErrInvalidState            = errs.New("invalid booking state")
	ErrLicenseUploadFailed     = errs.New("license upload failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingInput struct {
	TypeID             string
	Start              time.Time
	End                time.Time
	PrincipalEmail     string
	License            []byte
	LicenseFilename    string
	LicenseContentType string
}

type ConfirmResult struct {
	Status                booking.Status
	CarRegistrationNumber string
}

type BookingCommands interface {
	Create(ctx context.Context, in CreateBookingInput) (*queries.BookingView, error)
	Cancel(ctx context.Context, id uuid.UUID) (booking.Status, error)
	Confirm(ctx context.Context, id uuid.UUID, carRegistrationNumber string) (*ConfirmResult, error)
	Reject(ctx context.Context, id uuid.UUID) (booking.Status, error)
	SweepStatuses(ctx context.Context) error
}

type bookingCommandsImpl struct {
	ledger   BookingLedger
	carTypes CarTypeFinder
	callers  CallerDirectory
	storage  LicenseStorage
	mailer   EmailSender
	clock    clock.Clock
}

func NewBookingCommands(
	ledger BookingLedger,
	carTypes CarTypeFinder,
	callers CallerDirectory,
	storage LicenseStorage,
	mailer EmailSender,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		ledger:   ledger,
		carTypes: carTypes,
		callers:  callers,
		storage:  storage,
		mailer:   mailer,
		clock:    clk,
	}
}

// Create runs the admission sequence: validate, verify the caller, store
// the license, then hand the draft to the capacity-guarded insert. The
// availability cache is never consulted here — the decision is made against
// the live count.
func (c *bookingCommandsImpl) Create(ctx context.Context, in CreateBookingInput) (*queries.BookingView, error) {
	window, err := booking.NewWindow(in.Start, in.End)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidWindow)
	}

	carType, err := c.carTypes.FindByID(ctx, in.TypeID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCarTypeNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	caller, err := c.callers.FindByEmail(ctx, in.PrincipalEmail)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !caller.EmailVerified {
		return nil, ErrUserNotVerified
	}

	licenseKey, err := c.storage.Store(ctx, in.License, in.LicenseFilename, in.LicenseContentType)
	if err != nil {
		return nil, errs.Mark(err, ErrLicenseUploadFailed)
	}

	now := c.clock.Now()
	draft, err := booking.NewBooking(caller.ID, carType.ID(), window, carType.PricePerDayCents(), licenseKey, now)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidWindow)
	}

	admitted, err := c.ledger.TryInsert(ctx, draft)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !admitted {
		slog.Warn("booking admission rejected, no capacity",
			"type_id", in.TypeID, "start", window.Start(), "end", window.End())
		return nil, ErrNoAvailability
	}

	slog.Info("booking created",
		"booking_id", draft.ID(), "type_id", draft.TypeID(), "days", draft.Days())

	c.sendBookingEmail(ctx, caller.Email, "Booking received (To Confirm)", fmt.Sprintf(
		"<p>We received your booking for type <b>%s</b></p>"+
			"<p>From: %s<br/>To: %s<br/>Days: %d<br/>Total: %s</p>"+
			"<p>Status: %s</p>",
		carType.DisplayName(), window.Start().Format(time.RFC3339), window.End().Format(time.RFC3339),
		draft.Days(), formatCents(draft.TotalCents(), carType.Currency()), draft.Status()))

	return queries.ViewFromBooking(draft), nil
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) (booking.Status, error) {
	b, err := c.findBooking(ctx, id)
	if err != nil {
		return "", err
	}
	previous := b.Status()
	if err := b.Cancel(c.clock.Now()); err != nil {
		return "", ErrInvalidState
	}
	if err := c.persistTransition(ctx, b, previous); err != nil {
		return "", err
	}
	slog.Info("booking cancelled", "booking_id", id)
	c.notifyStatusChange(ctx, b, "Booking cancelled",
		fmt.Sprintf("<p>Your booking %s has been cancelled.</p>", b.ID()))
	return b.Status(), nil
}

func (c *bookingCommandsImpl) Confirm(ctx context.Context, id uuid.UUID, carRegistrationNumber string) (*ConfirmResult, error) {
	b, err := c.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := b.Status()
	if err := b.Confirm(c.clock.Now(), carRegistrationNumber); err != nil {
		return nil, ErrInvalidState
	}
	if err := c.persistTransition(ctx, b, previous); err != nil {
		return nil, err
	}
	slog.Info("booking confirmed",
		"booking_id", id, "status", b.Status(), "car_registration_number", carRegistrationNumber)
	c.notifyStatusChange(ctx, b, "Booking confirmed", fmt.Sprintf(
		"<p>Your booking %s is confirmed.</p><p>Car: <b>%s</b><br/>Status: %s</p>",
		b.ID(), carRegistrationNumber, b.Status()))
	return &ConfirmResult{
		Status:                b.Status(),
		CarRegistrationNumber: carRegistrationNumber,
	}, nil
}

func (c *bookingCommandsImpl) Reject(ctx context.Context, id uuid.UUID) (booking.Status, error) {
	b, err := c.findBooking(ctx, id)
	if err != nil {
		return "", err
	}
	previous := b.Status()
	if err := b.Reject(c.clock.Now()); err != nil {
		return "", ErrInvalidState
	}
	if err := c.persistTransition(ctx, b, previous); err != nil {
		return "", err
	}
	slog.Info("booking rejected", "booking_id", id)
	c.notifyStatusChange(ctx, b, "Booking rejected",
		fmt.Sprintf("<p>Your booking %s could not be honored and was rejected.</p>", b.ID()))
	return b.Status(), nil
}

// SweepStatuses advances time-driven transitions; invoked periodically by
// the lifecycle ticker.
func (c *bookingCommandsImpl) SweepStatuses(ctx context.Context) error {
	occupied, finished, err := c.ledger.SweepStatuses(ctx, c.clock.Now())
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if occupied > 0 || finished > 0 {
		slog.Info("booking status sweep", "occupied", occupied, "finished", finished)
	}
	return nil
}

func (c *bookingCommandsImpl) findBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := c.ledger.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return b, nil
}

func (c *bookingCommandsImpl) persistTransition(ctx context.Context, b *booking.Booking, previous booking.Status) error {
	updated, err := c.ledger.UpdateStatus(ctx, b, previous)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !updated {
		// A concurrent transition won the status race.
		return ErrInvalidState
	}
	return nil
}

// notifyStatusChange emails the booking's owner. Lookup and delivery are
// both best-effort; the transition has already been persisted.
func (c *bookingCommandsImpl) notifyStatusChange(ctx context.Context, b *booking.Booking, subject, body string) {
	owner, err := c.callers.FindByID(ctx, b.UserID())
	if err != nil {
		slog.Warn("could not resolve booking owner for notification",
			"booking_id", b.ID(), "error", err)
		return
	}
	c.sendBookingEmail(ctx, owner.Email, subject, body)
}

func (c *bookingCommandsImpl) sendBookingEmail(ctx context.Context, to, subject, body string) {
	if err := c.mailer.Send(ctx, to, subject, body); err != nil {
		slog.Warn("booking email delivery failed", "to", to, "subject", subject, "error", err)
	}
}

func formatCents(cents int64, currency string) string {
	return fmt.Sprintf("%d.%02d %s", cents/100, cents%100, currency)
}
