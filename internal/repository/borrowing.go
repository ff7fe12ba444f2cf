package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/bibliotek/library-api/internal/errs"
	"github.com/bibliotek/library-api/internal/model"
)

const loanPeriodDays = 14

const borrowingColumns = `id, book_id, borrower_id, borrowed_date, due_date, return_date, status, created_at`

func borrowingDetailsQuery() sq.SelectBuilder {
	return qb.Select(
		"b.id", "b.book_id", "b.borrower_id", "b.borrowed_date", "b.due_date",
		"b.return_date", "b.status", "b.created_at",
		"bk.title as book_title", "bk.author as book_author",
		"br.name as borrower_name", "br.email as borrower_email").
		From(borrowingsTableName + " b").
		Join(booksTableName + " bk on b.book_id = bk.id").
		Join(borrowersTableName + " br on b.borrower_id = br.id")
}

// Checkout creates a borrowing and decrements book availability in one
// transaction. The book row is locked first: the availability check must see
// the post-lock value, otherwise two checkouts of the last copy both succeed.
func (r *repository) Checkout(ctx context.Context, bookID, borrowerID int64) (model.Borrowing, error) {
	var brw model.Borrowing
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var available int
		err := tx.GetContext(ctx, &available,
			`select available_quantity from `+booksTableName+` where id = $1 for update`, bookID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errors.Wrap(errs.ErrNotFound, "book not found")
			}
			if pgCode(err) == pgerrcode.LockNotAvailable || errors.Is(err, context.DeadlineExceeded) {
				return errors.Wrap(errs.ErrUnavailable, "book row lock timed out")
			}
			return err
		}
		if available <= 0 {
			return errors.Wrap(errs.ErrConflict, "book is not available for checkout")
		}

		var exists int64
		if err := tx.GetContext(ctx, &exists,
			`select id from `+borrowersTableName+` where id = $1`, borrowerID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errors.Wrap(errs.ErrNotFound, "borrower not found")
			}
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`update `+booksTableName+` set available_quantity = available_quantity - 1, updated_at = now() where id = $1`,
			bookID); err != nil {
			return err
		}

		err = tx.GetContext(ctx, &brw, `
			insert into `+borrowingsTableName+` (book_id, borrower_id, due_date)
			values ($1, $2, current_date + $3 * interval '1 day')
			returning `+borrowingColumns,
			bookID, borrowerID, loanPeriodDays)
		if err != nil {
			if pgCode(err) == pgerrcode.ForeignKeyViolation {
				return errors.Wrap(errs.ErrConflict, "referenced entity no longer exists")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return model.Borrowing{}, err
	}
	return brw, nil
}

// Return closes a borrowing and gives the copy back to the book's
// availability. Returned is terminal: a second return is a conflict.
func (r *repository) Return(ctx context.Context, borrowingID int64) (model.Borrowing, error) {
	var brw model.Borrowing
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var cur struct {
			BookID int64        `db:"book_id"`
			Status model.Status `db:"status"`
		}
		err := tx.GetContext(ctx, &cur,
			`select book_id, status from `+borrowingsTableName+` where id = $1 for update`, borrowingID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errors.Wrap(errs.ErrNotFound, "borrowing record not found")
			}
			if pgCode(err) == pgerrcode.LockNotAvailable || errors.Is(err, context.DeadlineExceeded) {
				return errors.Wrap(errs.ErrUnavailable, "borrowing row lock timed out")
			}
			return err
		}
		if cur.Status == model.StatusReturned {
			return errors.Wrap(errs.ErrConflict, "book has already been returned")
		}

		if err := tx.GetContext(ctx, &brw, `
			update `+borrowingsTableName+`
			set status = 'returned', return_date = current_date
			where id = $1
			returning `+borrowingColumns, borrowingID); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`update `+booksTableName+` set available_quantity = available_quantity + 1, updated_at = now() where id = $1`,
			cur.BookID)
		return err
	})
	if err != nil {
		return model.Borrowing{}, err
	}
	return brw, nil
}

func (r *repository) GetBorrowerBooks(ctx context.Context, borrowerID int64) ([]model.BorrowingDetails, error) {
	query, args, err := borrowingDetailsQuery().
		Where(sq.Eq{"b.borrower_id": borrowerID}).
		Where(sq.Eq{"b.status": model.StatusBorrowed}).
		OrderBy("b.due_date asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.BorrowingDetails, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) GetOverdue(ctx context.Context) ([]model.BorrowingDetails, error) {
	query, args, err := borrowingDetailsQuery().
		Where(overduePredicate()).
		OrderBy("b.due_date asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.BorrowingDetails, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

// overduePredicate is the derived overdue condition; it is never stored.
func overduePredicate() sq.Sqlizer {
	return sq.And{
		sq.Eq{"b.status": model.StatusBorrowed},
		sq.Expr("b.due_date < current_date"),
	}
}

func (r *repository) ListBorrowings(ctx context.Context, status model.Status, page, limit int) ([]model.BorrowingDetails, int, error) {
	q := borrowingDetailsQuery().
		OrderBy("b.created_at desc").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit))
	cq := qb.Select("count(*)").From(borrowingsTableName + " b")

	switch status {
	case model.StatusBorrowed, model.StatusReturned:
		q = q.Where(sq.Eq{"b.status": status})
		cq = cq.Where(sq.Eq{"b.status": status})
	case model.StatusOverdue:
		q = q.Where(overduePredicate())
		cq = cq.Where(overduePredicate())
	}

	var (
		items = make([]model.BorrowingDetails, 0)
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		query, args, err := q.ToSql()
		if err != nil {
			return err
		}
		return r.db.SelectContext(gctx, &items, query, args...)
	})
	g.Go(func() error {
		query, args, err := cq.ToSql()
		if err != nil {
			return err
		}
		return r.db.GetContext(gctx, &total, query, args...)
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
