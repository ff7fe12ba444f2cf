package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bibliotek/library-api/internal/errs"
	"github.com/bibliotek/library-api/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go -package=mocks

type Repository interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	GetBook(ctx context.Context, id int64) (model.Book, error)
	ListBooks(ctx context.Context, page, limit int) (model.ListBooks, error)
	SearchBooks(ctx context.Context, query, field string) ([]model.Book, error)
	UpdateBook(ctx context.Context, id int64, patch model.BookPatch) (model.Book, error)
	DeleteBook(ctx context.Context, id int64) error

	CreateBorrower(ctx context.Context, req model.CreateBorrowerRequest) (model.Borrower, error)
	GetBorrower(ctx context.Context, id int64) (model.Borrower, error)
	ListBorrowers(ctx context.Context, page, limit int) (model.ListBorrowers, error)
	UpdateBorrower(ctx context.Context, id int64, patch model.BorrowerPatch) (model.Borrower, error)
	DeleteBorrower(ctx context.Context, id int64) error

	Checkout(ctx context.Context, bookID, borrowerID int64) (model.Borrowing, error)
	Return(ctx context.Context, borrowingID int64) (model.Borrowing, error)
	GetBorrowerBooks(ctx context.Context, borrowerID int64) ([]model.BorrowingDetails, error)
	GetOverdue(ctx context.Context) ([]model.BorrowingDetails, error)
	ListBorrowings(ctx context.Context, status model.Status, page, limit int) ([]model.BorrowingDetails, int, error)

	OverdueLastMonth(ctx context.Context) ([]model.BorrowingDetails, error)
	AllLastMonth(ctx context.Context) ([]model.BorrowingDetails, error)
	ByPeriod(ctx context.Context, start, end time.Time) ([]model.BorrowingDetails, error)

	CreateUser(ctx context.Context, name, email, passwordHash string) (model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	booksTableName      = `books`
	borrowersTableName  = `borrowers`
	borrowingsTableName = `borrowings`
	usersTableName      = `users`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// lockTimeout bounds how long a checkout/return transaction waits for the
// exclusive row lock; exceeding it surfaces as errs.ErrUnavailable.
const lockTimeout = `3s`

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// withTx runs fn inside a single all-or-nothing transaction. Any error rolls
// back every write made so far.
func (r *repository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(errs.ErrUnavailable, err.Error())
	}
	if _, err := tx.ExecContext(ctx, `set local lock_timeout = '`+lockTimeout+`'`); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(errs.ErrUnavailable, err.Error())
	}
	return nil
}
