package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/sqlerr"
)

const usersTable = "users"

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// GetUserWithEmail returns the user whose email matches exactly.
// A missing user is a sqlerr NotFound error.
func (r *UserRepository) GetUserWithEmail(ctx context.Context, email string) (model.User, error) {
	return r.getOne(ctx, `
	SELECT id, name, email, password
	FROM users
	WHERE email = $1;
	`, email)
}

// GetUserWithID returns the user with the given id.
// A missing user is a sqlerr NotFound error.
func (r *UserRepository) GetUserWithID(ctx context.Context, id int64) (model.User, error) {
	return r.getOne(ctx, `
	SELECT id, name, email, password
	FROM users
	WHERE id = $1;
	`, id)
}

// AddUser inserts a user and returns the created row.
func (r *UserRepository) AddUser(ctx context.Context, user model.NewUser) (model.User, error) {
	return r.getOne(ctx, `
	INSERT INTO users (name, email, password)
	VALUES ($1, $2, $3)
	RETURNING id, name, email, password;
	`, user.Name, user.Email, user.Password)
}

func (r *UserRepository) getOne(ctx context.Context, query string, args ...any) (model.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.User{}, sqlerr.Wrap(err, usersTable)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return model.User{}, sqlerr.Wrap(err, usersTable)
	}

	return user, nil
}
