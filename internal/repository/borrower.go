package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/bibliotek/library-api/internal/errs"
	"github.com/bibliotek/library-api/internal/model"
)

const borrowerColumns = `id, name, email, created_at, updated_at`

func (r *repository) CreateBorrower(ctx context.Context, req model.CreateBorrowerRequest) (model.Borrower, error) {
	query, args, err := qb.Insert(borrowersTableName).
		Columns("name", "email").
		Values(req.Name, req.Email).
		Suffix("returning " + borrowerColumns).
		ToSql()
	if err != nil {
		return model.Borrower{}, err
	}
	var borrower model.Borrower
	if err := r.db.GetContext(ctx, &borrower, query, args...); err != nil {
		if pgCode(err) == pgerrcode.UniqueViolation {
			return model.Borrower{}, errors.Wrap(errs.ErrConflict, "borrower with this email already exists")
		}
		return model.Borrower{}, err
	}
	return borrower, nil
}

func (r *repository) GetBorrower(ctx context.Context, id int64) (model.Borrower, error) {
	query, args, err := qb.Select(borrowerColumns).
		From(borrowersTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Borrower{}, err
	}
	var borrower model.Borrower
	if err := r.db.GetContext(ctx, &borrower, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Borrower{}, errors.Wrap(errs.ErrNotFound, "borrower not found")
		}
		return model.Borrower{}, err
	}
	return borrower, nil
}

func (r *repository) ListBorrowers(ctx context.Context, page, limit int) (model.ListBorrowers, error) {
	query, args, err := qb.Select(borrowerColumns).
		From(borrowersTableName).
		OrderBy("created_at desc").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		ToSql()
	if err != nil {
		return model.ListBorrowers{}, err
	}
	borrowers := make([]model.Borrower, 0)
	if err := r.db.SelectContext(ctx, &borrowers, query, args...); err != nil {
		return model.ListBorrowers{}, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, `select count(*) from `+borrowersTableName); err != nil {
		return model.ListBorrowers{}, err
	}
	return model.ListBorrowers{
		Items:  borrowers,
		Paging: newPaging(total, page, limit),
	}, nil
}

func (r *repository) UpdateBorrower(ctx context.Context, id int64, patch model.BorrowerPatch) (model.Borrower, error) {
	upd := qb.Update(borrowersTableName).Where(sq.Eq{"id": id})
	touched := false
	if patch.Name != nil {
		upd = upd.Set("name", *patch.Name)
		touched = true
	}
	if patch.Email != nil {
		upd = upd.Set("email", *patch.Email)
		touched = true
	}
	if !touched {
		return r.GetBorrower(ctx, id)
	}

	query, args, err := upd.
		Set("updated_at", sq.Expr("now()")).
		Suffix("returning " + borrowerColumns).
		ToSql()
	if err != nil {
		return model.Borrower{}, err
	}
	var borrower model.Borrower
	if err := r.db.GetContext(ctx, &borrower, query, args...); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return model.Borrower{}, errors.Wrap(errs.ErrNotFound, "borrower not found")
		case pgCode(err) == pgerrcode.UniqueViolation:
			return model.Borrower{}, errors.Wrap(errs.ErrConflict, "borrower with this email already exists")
		}
		return model.Borrower{}, err
	}
	return borrower, nil
}

// DeleteBorrower locks the borrower row before the active-borrowing check,
// same discipline as DeleteBook.
func (r *repository) DeleteBorrower(ctx context.Context, id int64) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		var borrowerID int64
		err := tx.GetContext(ctx, &borrowerID,
			`select id from `+borrowersTableName+` where id = $1 for update`, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errors.Wrap(errs.ErrNotFound, "borrower not found")
			}
			if pgCode(err) == pgerrcode.LockNotAvailable || errors.Is(err, context.DeadlineExceeded) {
				return errors.Wrap(errs.ErrUnavailable, "borrower row lock timed out")
			}
			return err
		}

		var active int
		if err := tx.GetContext(ctx, &active,
			`select count(*) from `+borrowingsTableName+` where borrower_id = $1 and status = $2`,
			id, model.StatusBorrowed); err != nil {
			return err
		}
		if active > 0 {
			return errors.Wrap(errs.ErrConflict, "cannot delete borrower with active borrowings")
		}

		_, err = tx.ExecContext(ctx, `delete from `+borrowersTableName+` where id = $1`, id)
		return err
	})
}
