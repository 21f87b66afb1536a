package queries

import (
	"context"
	"time"

	"carrental/internal/domain/booking"
	"carrental/internal/infra"
	"carrental/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBookingNotFound = errs.New("booking not found")

// Read models (DTO for read side)
type BookingView struct {
	BookingID             uuid.UUID `json:"bookingId"`
	Status                string    `json:"status"`
	TypeID                string    `json:"typeId"`
	UserID                uuid.UUID `json:"userId"`
	Start                 time.Time `json:"start"`
	End                   time.Time `json:"end"`
	Days                  int       `json:"days"`
	PricePerDayCents      int64     `json:"pricePerDayCents"`
	EstimatedTotalCents   int64     `json:"estimatedTotal"`
	LicenseImageKey       string    `json:"licenseImageKey"`
	CarRegistrationNumber *string   `json:"carRegistrationNumber,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
}

type AdminBookingItem struct {
	BookingID             uuid.UUID `json:"bookingId"`
	Status                string    `json:"status"`
	UserEmail             string    `json:"userEmail"`
	UserPhone             *string   `json:"userPhone,omitempty"`
	TypeID                string    `json:"typeId"`
	Start                 time.Time `json:"start"`
	End                   time.Time `json:"end"`
	LicenseImageKey       string    `json:"licenseImageUrlOrKey"`
	CarRegistrationNumber *string   `json:"carRegistrationNumber,omitempty"`
	Days                  int       `json:"days"`
	PricePerDayCents      int64     `json:"pricePerDayCents"`
	TotalCents            int64     `json:"total"`
}

type BookingFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListForAdmin(ctx context.Context, status *booking.Status, from, to time.Time) ([]AdminBookingItem, error)
}

type bookingQueriesImpl struct {
	finder BookingFinder
	lister BookingWindowReader
}

func NewBookingQueries(finder BookingFinder, lister BookingWindowReader) BookingQueries {
	return &bookingQueriesImpl{finder: finder, lister: lister}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	b, err := q.finder.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return ViewFromBooking(b), nil
}

func (q *bookingQueriesImpl) ListForAdmin(ctx context.Context, status *booking.Status, from, to time.Time) ([]AdminBookingItem, error) {
	rows, err := q.lister.ListForWindow(ctx, status, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]AdminBookingItem, len(rows))
	for i, row := range rows {
		b := row.Booking
		out[i] = AdminBookingItem{
			BookingID:             b.ID(),
			Status:                b.Status().String(),
			UserEmail:             row.UserEmail,
			UserPhone:             row.UserPhone,
			TypeID:                b.TypeID(),
			Start:                 b.Window().Start(),
			End:                   b.Window().End(),
			LicenseImageKey:       b.LicenseKey(),
			CarRegistrationNumber: b.CarRegistrationNumber(),
			Days:                  b.Days(),
			PricePerDayCents:      b.PricePerDayCents(),
			TotalCents:            b.TotalCents(),
		}
	}
	return out, nil
}

func ViewFromBooking(b *booking.Booking) *BookingView {
	return &BookingView{
		BookingID:             b.ID(),
		Status:                b.Status().String(),
		TypeID:                b.TypeID(),
		UserID:                b.UserID(),
		Start:                 b.Window().Start(),
		End:                   b.Window().End(),
		Days:                  b.Days(),
		PricePerDayCents:      b.PricePerDayCents(),
		EstimatedTotalCents:   b.TotalCents(),
		LicenseImageKey:       b.LicenseKey(),
		CarRegistrationNumber: b.CarRegistrationNumber(),
		CreatedAt:             b.CreatedAt(),
	}
}
