//go:build unit || e2e

package dbtest

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBLike is the minimal execution surface the fixtures need; pgxpool.Pool
// and pgx.Tx both satisfy it.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ResetBookings clears booking state between tests. Reference data
// (car types, users) is left in place.
func ResetBookings(db DBLike) error {
	_, err := db.Exec(context.Background(), "TRUNCATE TABLE bookings")
	return err
}

func SeedCarType(db DBLike, id string, totalQuantity int, pricePerDayCents int64) error {
	_, err := db.Exec(context.Background(), `
		INSERT INTO car_types (id, display_name, price_per_day_cents, currency, total_quantity)
		VALUES ($1, $1, $2, 'EUR', $3)
		ON CONFLICT (id) DO UPDATE SET
			total_quantity = EXCLUDED.total_quantity,
			price_per_day_cents = EXCLUDED.price_per_day_cents`,
		id, pricePerDayCents, totalQuantity)
	return err
}

func SeedUser(db DBLike, email string, verified bool) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO users (id, email, email_verified)
		VALUES ($1, $2, $3)`,
		id, email, verified)
	return id, err
}
