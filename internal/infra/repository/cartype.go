package repository

import (
	"context"
	"errors"

	"carrental/internal/domain/cartype"
	"carrental/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CarTypeRepository struct {
	db *pgxpool.Pool
}

func NewCarTypeRepository(db *pgxpool.Pool) *CarTypeRepository {
	return &CarTypeRepository{db: db}
}

const carTypeColumns = `id, display_name, description, price_per_day_cents, currency, total_quantity, photo_url, metadata`

func (r *CarTypeRepository) FindByID(ctx context.Context, id string) (*cartype.CarType, error) {
	row := r.db.QueryRow(ctx, `SELECT `+carTypeColumns+` FROM car_types WHERE id = $1`, id)
	ct, err := scanCarType(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("car type not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find car type", err)
	}
	return ct, nil
}

func (r *CarTypeRepository) FindAll(ctx context.Context) ([]*cartype.CarType, error) {
	rows, err := r.db.Query(ctx, `SELECT `+carTypeColumns+` FROM car_types ORDER BY id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list car types", err)
	}
	defer rows.Close()

	var out []*cartype.CarType
	for rows.Next() {
		ct, err := scanCarType(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan car type row", err)
		}
		out = append(out, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate car type rows", err)
	}
	return out, nil
}

func scanCarType(row pgx.Row) (*cartype.CarType, error) {
	var (
		id, displayName, description string
		pricePerDayCents             int64
		currency                     string
		totalQuantity                int
		photoURL                     *string
		metadata                     map[string]any
	)
	if err := row.Scan(&id, &displayName, &description, &pricePerDayCents,
		&currency, &totalQuantity, &photoURL, &metadata); err != nil {
		return nil, err
	}
	photo := ""
	if photoURL != nil {
		photo = *photoURL
	}
	return cartype.NewCarType(id, displayName, description, pricePerDayCents, currency, totalQuantity, photo, metadata)
}
