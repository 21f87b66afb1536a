package repository

import (
	"context"
	"errors"
	"time"

	"carrental/internal/domain/booking"
	"carrental/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// CountOverlapping counts bookings of the type that hold a car somewhere in
// [from, to). Half-open: a booking ending exactly at `from` does not count.
func (r *BookingRepository) CountOverlapping(ctx context.Context, typeID string, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM bookings b
		WHERE b.type_id = $1
		  AND b.status = ANY($2)
		  AND b.start_ts < $4 AND b.end_ts > $3`,
		typeID, booking.ActiveStatusStrings(), from, to).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count overlapping bookings", err)
	}
	return n, nil
}

// TryInsert is the capacity-guarded admission. The car type row is locked
// FOR UPDATE for the duration of the check-and-insert, so concurrent admits
// for the same type serialize on that row and each re-count sees every
// previously committed admission. Returns false, nil when capacity is
// exhausted — an expected outcome, not an error.
func (r *BookingRepository) TryInsert(ctx context.Context, b *booking.Booking) (bool, error) {
	w := b.Window()
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, infra.WrapRepoErr("failed to begin admission transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var total int64
	err = tx.QueryRow(ctx,
		`SELECT total_quantity FROM car_types WHERE id = $1 FOR UPDATE`,
		b.TypeID()).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, infra.WrapRepoErr("car type not found", err, infra.KindNotFound)
		}
		return false, infra.WrapRepoErr("failed to lock car type", err)
	}

	var active int64
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM bookings b
		WHERE b.type_id = $1
		  AND b.status = ANY($2)
		  AND b.start_ts < $4 AND b.end_ts > $3`,
		b.TypeID(), booking.ActiveStatusStrings(), w.Start(), w.End()).Scan(&active)
	if err != nil {
		return false, infra.WrapRepoErr("failed to count overlapping bookings", err)
	}
	if active >= total {
		return false, nil
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (id, user_id, type_id, status, start_ts, end_ts,
		                      days, price_per_day_cents, total_cents, license_key,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
		b.ID(), b.UserID(), b.TypeID(), string(b.Status()), w.Start(), w.End(),
		b.Days(), b.PricePerDayCents(), b.TotalCents(), b.LicenseKey(), b.CreatedAt())
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert booking", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, infra.WrapRepoErr("failed to commit admission", err)
	}
	return true, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, type_id, status, start_ts, end_ts, days,
		       price_per_day_cents, total_cents, license_key,
		       car_registration_number, created_at, updated_at
		FROM bookings WHERE id = $1`, id)

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by id", err)
	}
	return b, nil
}

// UpdateStatus persists the result of a lifecycle transition. The WHERE
// clause re-checks the previous status so a concurrent transition on the
// same row loses cleanly instead of overwriting.
func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking, previous booking.Status) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET status = $2, car_registration_number = $3, updated_at = $4
		WHERE id = $1 AND status = $5`,
		b.ID(), string(b.Status()), b.CarRegistrationNumber(), b.UpdatedAt(), string(previous))
	if err != nil {
		return false, infra.WrapRepoErr("failed to update booking status", err)
	}
	return tag.RowsAffected() == 1, nil
}

// BookingWithUser joins the owning user's contact fields for admin views.
type BookingWithUser struct {
	Booking   *booking.Booking
	UserEmail string
	UserPhone *string
}

// ListForWindow returns bookings whose window intersects [from, to),
// optionally filtered by status, newest first.
func (r *BookingRepository) ListForWindow(ctx context.Context, status *booking.Status, from, to time.Time) ([]BookingWithUser, error) {
	var statusStr *string
	if status != nil {
		s := string(*status)
		statusStr = &s
	}
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.user_id, b.type_id, b.status, b.start_ts, b.end_ts, b.days,
		       b.price_per_day_cents, b.total_cents, b.license_key,
		       b.car_registration_number, b.created_at, b.updated_at,
		       u.email, u.phone
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE ($1::text IS NULL OR b.status = $1)
		  AND b.start_ts < $3 AND b.end_ts > $2
		ORDER BY b.created_at DESC`,
		statusStr, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings for window", err)
	}
	defer rows.Close()

	var out []BookingWithUser
	for rows.Next() {
		var (
			id, userID       uuid.UUID
			typeID, status   string
			startTs, endTs   time.Time
			days             int
			perDay, total    int64
			licenseKey       string
			regNumber        *string
			createdAt        time.Time
			updatedAt        time.Time
			userEmail        string
			userPhone        *string
		)
		if err := rows.Scan(&id, &userID, &typeID, &status, &startTs, &endTs, &days,
			&perDay, &total, &licenseKey, &regNumber, &createdAt, &updatedAt,
			&userEmail, &userPhone); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		w, err := booking.NewWindow(startTs, endTs)
		if err != nil {
			return nil, infra.WrapRepoErr("stored booking window is invalid", err)
		}
		out = append(out, BookingWithUser{
			Booking: booking.Reconstruct(id, userID, typeID, booking.Status(status), w,
				days, perDay, total, licenseKey, regNumber, createdAt, updatedAt),
			UserEmail: userEmail,
			UserPhone: userPhone,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return out, nil
}

// SweepStatuses advances time-driven transitions in bulk: confirmed future
// bookings whose window has started become OCCUPIED, and any confirmed
// booking whose window has fully elapsed becomes FINISHED.
func (r *BookingRepository) SweepStatuses(ctx context.Context, now time.Time) (occupied, finished int64, err error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET status = $1, updated_at = $3
		WHERE status = $2 AND start_ts <= $3 AND end_ts > $3`,
		string(booking.StatusOccupied), string(booking.StatusBooked), now)
	if err != nil {
		return 0, 0, infra.WrapRepoErr("failed to sweep occupations", err)
	}
	occupied = tag.RowsAffected()

	tag, err = r.db.Exec(ctx, `
		UPDATE bookings SET status = $1, updated_at = $3
		WHERE status = ANY($2) AND end_ts <= $3`,
		string(booking.StatusFinished),
		[]string{string(booking.StatusBooked), string(booking.StatusOccupied)}, now)
	if err != nil {
		return occupied, 0, infra.WrapRepoErr("failed to sweep finished bookings", err)
	}
	return occupied, tag.RowsAffected(), nil
}

type bookingRow interface {
	Scan(dest ...any) error
}

func scanBooking(row bookingRow) (*booking.Booking, error) {
	var (
		id, userID     uuid.UUID
		typeID, status string
		startTs, endTs time.Time
		days           int
		perDay, total  int64
		licenseKey     string
		regNumber      *string
		createdAt      time.Time
		updatedAt      time.Time
	)
	if err := row.Scan(&id, &userID, &typeID, &status, &startTs, &endTs, &days,
		&perDay, &total, &licenseKey, &regNumber, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	w, err := booking.NewWindow(startTs, endTs)
	if err != nil {
		return nil, err
	}
	return booking.Reconstruct(id, userID, typeID, booking.Status(status), w,
		days, perDay, total, licenseKey, regNumber, createdAt, updatedAt), nil
}
