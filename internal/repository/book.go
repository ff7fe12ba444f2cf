package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bibliotek/library-api/internal/errs"
	"github.com/bibliotek/library-api/internal/model"
)

const bookColumns = `id, title, author, isbn, total_quantity, available_quantity, shelf_location, created_at, updated_at`

func (r *repository) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	query, args, err := qb.Insert(booksTableName).
		Columns("title", "author", "isbn", "total_quantity", "available_quantity", "shelf_location").
		Values(req.Title, req.Author, req.ISBN, req.TotalQuantity, req.TotalQuantity, req.ShelfLocation).
		Suffix("returning " + bookColumns).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if pgCode(err) == pgerrcode.UniqueViolation {
			return model.Book{}, errors.Wrap(errs.ErrConflict, "book with this isbn already exists")
		}
		r.log.Error("CreateBook", zap.String("q", query), zap.Any("args", args))
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) GetBook(ctx context.Context, id int64) (model.Book, error) {
	query, args, err := qb.Select(bookColumns).
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errors.Wrap(errs.ErrNotFound, "book not found")
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) ListBooks(ctx context.Context, page, limit int) (model.ListBooks, error) {
	query, args, err := qb.Select(bookColumns).
		From(booksTableName).
		OrderBy("created_at desc").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		ToSql()
	if err != nil {
		return model.ListBooks{}, err
	}
	books := make([]model.Book, 0)
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return model.ListBooks{}, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, `select count(*) from `+booksTableName); err != nil {
		return model.ListBooks{}, err
	}
	return model.ListBooks{
		Items:  books,
		Paging: newPaging(total, page, limit),
	}, nil
}

func (r *repository) SearchBooks(ctx context.Context, query, field string) ([]model.Book, error) {
	q := qb.Select(bookColumns).From(booksTableName)
	if field == "isbn" {
		q = q.Where(sq.Eq{"isbn": query})
	} else {
		q = q.Where(sq.ILike{field: "%" + query + "%"})
	}
	sqlq, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	books := make([]model.Book, 0)
	if err := r.db.SelectContext(ctx, &books, sqlq, args...); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *repository) UpdateBook(ctx context.Context, id int64, patch model.BookPatch) (model.Book, error) {
	upd := qb.Update(booksTableName).Where(sq.Eq{"id": id})
	touched := false
	if patch.Title != nil {
		upd = upd.Set("title", *patch.Title)
		touched = true
	}
	if patch.Author != nil {
		upd = upd.Set("author", *patch.Author)
		touched = true
	}
	if patch.ISBN != nil {
		upd = upd.Set("isbn", *patch.ISBN)
		touched = true
	}
	if patch.TotalQuantity != nil {
		// availability follows the total by the same delta; the table check
		// constraint rejects a total below the outstanding loan count
		upd = upd.
			Set("total_quantity", *patch.TotalQuantity).
			Set("available_quantity", sq.Expr("available_quantity + (? - total_quantity)", *patch.TotalQuantity))
		touched = true
	}
	if patch.ShelfLocation != nil {
		upd = upd.Set("shelf_location", *patch.ShelfLocation)
		touched = true
	}
	if !touched {
		return r.GetBook(ctx, id)
	}

	query, args, err := upd.
		Set("updated_at", sq.Expr("now()")).
		Suffix("returning " + bookColumns).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return model.Book{}, errors.Wrap(errs.ErrNotFound, "book not found")
		case pgCode(err) == pgerrcode.UniqueViolation:
			return model.Book{}, errors.Wrap(errs.ErrConflict, "book with this isbn already exists")
		case pgCode(err) == pgerrcode.CheckViolation:
			return model.Book{}, errors.Wrap(errs.ErrConflict, "total quantity below number of borrowed copies")
		}
		return model.Book{}, err
	}
	return book, nil
}

// DeleteBook removes a book unless a copy is still out. Returned borrowing
// history goes with the book (cascade). The book row is locked before the
// active-borrowing check: a concurrent checkout holds the same lock, so the
// check always sees its committed borrowing.
func (r *repository) DeleteBook(ctx context.Context, id int64) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		var bookID int64
		err := tx.GetContext(ctx, &bookID,
			`select id from `+booksTableName+` where id = $1 for update`, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errors.Wrap(errs.ErrNotFound, "book not found")
			}
			if pgCode(err) == pgerrcode.LockNotAvailable || errors.Is(err, context.DeadlineExceeded) {
				return errors.Wrap(errs.ErrUnavailable, "book row lock timed out")
			}
			return err
		}

		var active int
		if err := tx.GetContext(ctx, &active,
			`select count(*) from `+borrowingsTableName+` where book_id = $1 and status = $2`,
			id, model.StatusBorrowed); err != nil {
			return err
		}
		if active > 0 {
			return errors.Wrap(errs.ErrConflict, "cannot delete book with active borrowings")
		}

		_, err = tx.ExecContext(ctx, `delete from `+booksTableName+` where id = $1`, id)
		return err
	})
}

func newPaging(total, page, limit int) model.Paging {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return model.Paging{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}
}
