package repository

import (
	"context"
	"errors"

	"carrental/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRecord is the slice of the externally-managed user account this
// service needs: an owning id and the verification predicate for admission.
type UserRecord struct {
	ID            uuid.UUID
	Email         string
	Phone         *string
	EmailVerified bool
}

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*UserRecord, error) {
	var u UserRecord
	err := r.db.QueryRow(ctx, `
		SELECT id, email, phone, email_verified FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Email, &u.Phone, &u.EmailVerified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*UserRecord, error) {
	var u UserRecord
	err := r.db.QueryRow(ctx, `
		SELECT id, email, phone, email_verified FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.Phone, &u.EmailVerified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by id", err)
	}
	return &u, nil
}
