package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// UserRepo is the read-only view of the account store the geo-tracking
// service needs: whether a user id exists.
type UserRepo interface {
	// Exists reports whether a user with the given id exists.
	Exists(ctx context.Context, id int64) (bool, error)
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

func (r *pgUserRepo) Exists(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE id = @id)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.UserRepo.Exists: %w", err)
	}
	return exists, nil
}
