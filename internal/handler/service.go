package handler

import (
	"context"
	"time"

	"github.com/bibliotek/library-api/internal/model"
	"github.com/bibliotek/library-api/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go -package=mocks

type BookService interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	GetBook(ctx context.Context, id int64) (model.Book, error)
	ListBooks(ctx context.Context, page, limit int) (model.ListBooks, error)
	SearchBooks(ctx context.Context, query, field string) ([]model.Book, error)
	UpdateBook(ctx context.Context, id int64, patch model.BookPatch) (model.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

type BorrowerService interface {
	CreateBorrower(ctx context.Context, req model.CreateBorrowerRequest) (model.Borrower, error)
	GetBorrower(ctx context.Context, id int64) (model.Borrower, error)
	ListBorrowers(ctx context.Context, page, limit int) (model.ListBorrowers, error)
	UpdateBorrower(ctx context.Context, id int64, patch model.BorrowerPatch) (model.Borrower, error)
	DeleteBorrower(ctx context.Context, id int64) error
}

type BorrowingService interface {
	Checkout(ctx context.Context, req model.CheckoutRequest) (model.Borrowing, error)
	Return(ctx context.Context, borrowingID int64) (model.Borrowing, error)
	GetBorrowerBooks(ctx context.Context, borrowerID int64) ([]model.BorrowingDetails, error)
	GetOverdue(ctx context.Context) ([]model.BorrowingDetails, error)
	ListBorrowings(ctx context.Context, status string, page, limit int) (model.ListBorrowings, error)
}

type ReportService interface {
	OverdueLastMonth(ctx context.Context) (model.Report, error)
	AllLastMonth(ctx context.Context) (model.Report, error)
	ByPeriod(ctx context.Context, start, end time.Time) (model.Report, error)
	ExportOverdueLastMonth(ctx context.Context, format string) (string, string, error)
	ExportAllLastMonth(ctx context.Context, format string) (string, string, error)
	ExportPeriod(ctx context.Context, start, end time.Time, format string) (string, string, error)
}

type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error)
	CurrentUser(ctx context.Context) (model.User, error)
}

var (
	_ BookService      = (*service.Service)(nil)
	_ BorrowerService  = (*service.Service)(nil)
	_ BorrowingService = (*service.Service)(nil)
	_ ReportService    = (*service.Service)(nil)
	_ AuthService      = (*service.Service)(nil)
)
