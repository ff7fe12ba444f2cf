package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bibliotek/library-api/internal/errs"
	"github.com/bibliotek/library-api/internal/handler"
	service_mocks "github.com/bibliotek/library-api/internal/handler/mocks"
	"github.com/bibliotek/library-api/internal/model"
	"github.com/bibliotek/library-api/pkg/validate"
)

func TestHandler_Checkout(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBorrowingService)

	borrowed := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	due := borrowed.AddDate(0, 0, 14)
	created := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			body: `{"book_id":2,"borrower_id":3}`,
			mockBehavior: func(r *service_mocks.MockBorrowingService) {
				r.EXPECT().
					Checkout(context.Background(), model.CheckoutRequest{BookID: 2, BorrowerID: 3}).
					Return(model.Borrowing{
						ID:           1,
						BookID:       2,
						BorrowerID:   3,
						BorrowedDate: borrowed,
						DueDate:      due,
						Status:       model.StatusBorrowed,
						CreatedAt:    created,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":1,"bookId":2,"borrowerId":3,"borrowedDate":"2026-08-01T00:00:00Z","dueDate":"2026-08-15T00:00:00Z","status":"borrowed","createdAt":"2026-08-01T10:30:00Z"}`,
			},
		},
		{
			name: "err. book not found",
			body: `{"book_id":99,"borrower_id":3}`,
			mockBehavior: func(r *service_mocks.MockBorrowingService) {
				r.EXPECT().
					Checkout(context.Background(), model.CheckoutRequest{BookID: 99, BorrowerID: 3}).
					Return(model.Borrowing{}, errors.Wrap(errs.ErrNotFound, "book not found"))
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"book not found: not found"}`,
			},
			wantErr: true,
		},
		{
			name: "err. no copies available",
			body: `{"book_id":2,"borrower_id":3}`,
			mockBehavior: func(r *service_mocks.MockBorrowingService) {
				r.EXPECT().
					Checkout(context.Background(), model.CheckoutRequest{BookID: 2, BorrowerID: 3}).
					Return(model.Borrowing{}, errors.Wrap(errs.ErrConflict, "book is not available for checkout"))
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"book is not available for checkout: conflict"}`,
			},
			wantErr: true,
		},
		{
			name:         "err. missing book_id",
			body:         `{"borrower_id":3}`,
			mockBehavior: func(r *service_mocks.MockBorrowingService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockBorrowingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(handler.Services{Borrowing: svc}, nil, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/borrowings/checkout", h.Checkout)

			r := httptest.NewRequest(http.MethodPost, "/borrowings/checkout", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_Return(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBorrowingService)

	borrowed := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	due := borrowed.AddDate(0, 0, 14)
	returned := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	var tests = []struct {
		name         string
		borrowingID  string
		mockBehavior mockBehavior
		response     response
		wantErr      bool
	}{
		{
			name:        "ok",
			borrowingID: "1",
			mockBehavior: func(r *service_mocks.MockBorrowingService) {
				r.EXPECT().
					Return(context.Background(), int64(1)).
					Return(model.Borrowing{
						ID:           1,
						BookID:       2,
						BorrowerID:   3,
						BorrowedDate: borrowed,
						DueDate:      due,
						ReturnDate:   &returned,
						Status:       model.StatusReturned,
						CreatedAt:    borrowed,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":1,"bookId":2,"borrowerId":3,"borrowedDate":"2026-08-01T00:00:00Z","dueDate":"2026-08-15T00:00:00Z","returnDate":"2026-08-10T00:00:00Z","status":"returned","createdAt":"2026-08-01T00:00:00Z"}`,
			},
		},
		{
			name:        "err. already returned",
			borrowingID: "1",
			mockBehavior: func(r *service_mocks.MockBorrowingService) {
				r.EXPECT().
					Return(context.Background(), int64(1)).
					Return(model.Borrowing{}, errors.Wrap(errs.ErrConflict, "book has already been returned"))
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"book has already been returned: conflict"}`,
			},
			wantErr: true,
		},
		{
			name:        "err. not found",
			borrowingID: "42",
			mockBehavior: func(r *service_mocks.MockBorrowingService) {
				r.EXPECT().
					Return(context.Background(), int64(42)).
					Return(model.Borrowing{}, errors.Wrap(errs.ErrNotFound, "borrowing record not found"))
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"borrowing record not found: not found"}`,
			},
			wantErr: true,
		},
		{
			name:         "err. invalid id",
			borrowingID:  "abc",
			mockBehavior: func(r *service_mocks.MockBorrowingService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"invalid id"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockBorrowingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(handler.Services{Borrowing: svc}, nil, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/borrowings/:id/return", h.Return)

			r := httptest.NewRequest(http.MethodPost,
				fmt.Sprintf("/borrowings/%s/return", tt.borrowingID), http.NoBody)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_ListBorrowings(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockBorrowingService)

	var tests = []struct {
		name         string
		query        string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name:  "ok. empty page",
			query: "?status=borrowed&page=1&limit=10",
			mockBehavior: func(r *service_mocks.MockBorrowingService) {
				r.EXPECT().
					ListBorrowings(context.Background(), "borrowed", 1, 10).
					Return(model.ListBorrowings{
						Items:  []model.BorrowingDetails{},
						Paging: model.Paging{Total: 0, Page: 1, Limit: 10, Pages: 0},
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"items":[],"total":0,"page":1,"limit":10,"pages":0}`,
		},
		{
			name:  "err. unknown status",
			query: "?status=lost",
			mockBehavior: func(r *service_mocks.MockBorrowingService) {
				r.EXPECT().
					ListBorrowings(context.Background(), "lost", 0, 0).
					Return(model.ListBorrowings{}, errors.Wrapf(errs.ErrValidation, "unknown status %q", "lost"))
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"unknown status \"lost\": validation failed"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockBorrowingService(c)
			h := handler.New(handler.Services{Borrowing: svc}, nil, zap.NewExample().Named("test"))

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.GET("/borrowings", h.ListBorrowings)

			r := httptest.NewRequest(http.MethodGet, "/borrowings"+tt.query, http.NoBody)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_DeleteBook(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockBookService)

	var tests = []struct {
		name         string
		bookID       string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name:   "ok",
			bookID: "1",
			mockBehavior: func(r *service_mocks.MockBookService) {
				r.EXPECT().DeleteBook(context.Background(), int64(1)).Return(nil)
			},
			expectedCode: http.StatusNoContent,
			expectedBody: ``,
		},
		{
			name:   "err. active borrowings",
			bookID: "1",
			mockBehavior: func(r *service_mocks.MockBookService) {
				r.EXPECT().DeleteBook(context.Background(), int64(1)).
					Return(errors.Wrap(errs.ErrConflict, "cannot delete book with active borrowings"))
			},
			expectedCode: http.StatusConflict,
			expectedBody: `{"message":"cannot delete book with active borrowings: conflict"}`,
		},
		{
			name:   "err. not found",
			bookID: "7",
			mockBehavior: func(r *service_mocks.MockBookService) {
				r.EXPECT().DeleteBook(context.Background(), int64(7)).
					Return(errors.Wrap(errs.ErrNotFound, "book not found"))
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"book not found: not found"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockBookService(c)
			h := handler.New(handler.Services{Book: svc}, nil, zap.NewExample().Named("test"))

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.DELETE("/books/:id", h.DeleteBook)

			r := httptest.NewRequest(http.MethodDelete, "/books/"+tt.bookID, http.NoBody)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Login(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockAuthService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name: "err. wrong password",
			body: `{"email":"max@lib.io","password":"wrongpass"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					Login(context.Background(), model.LoginRequest{Email: "max@lib.io", Password: "wrongpass"}).
					Return(model.AuthResponse{}, errors.Wrap(errs.ErrUnauthorized, "invalid email or password"))
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"message":"invalid email or password: unauthorized"}`,
		},
		{
			name:         "err. malformed email",
			body:         `{"email":"not-an-email","password":"secret123"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {},
			expectedCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockAuthService(c)
			h := handler.New(handler.Services{Auth: svc}, nil, zap.NewExample().Named("test"))

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/auth/login", h.Login)

			r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}
