package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/pkg/errors"

	"github.com/bibliotek/library-api/internal/errs"
	"github.com/bibliotek/library-api/internal/model"
)

const userColumns = `id, name, email, password_hash, created_at, updated_at`

func (r *repository) CreateUser(ctx context.Context, name, email, passwordHash string) (model.User, error) {
	query, args, err := qb.Insert(usersTableName).
		Columns("name", "email", "password_hash").
		Values(name, email, passwordHash).
		Suffix("returning " + userColumns).
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if pgCode(err) == pgerrcode.UniqueViolation {
			return model.User{}, errors.Wrap(errs.ErrConflict, "user with this email already exists")
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *repository) GetUser(ctx context.Context, id int64) (model.User, error) {
	return r.getUser(ctx, sq.Eq{"id": id})
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return r.getUser(ctx, sq.Eq{"email": email})
}

func (r *repository) getUser(ctx context.Context, pred sq.Eq) (model.User, error) {
	query, args, err := qb.Select(userColumns).
		From(usersTableName).
		Where(pred).
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errors.Wrap(errs.ErrNotFound, "user not found")
		}
		return model.User{}, err
	}
	return user, nil
}
