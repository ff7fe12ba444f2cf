package service_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bibliotek/library-api/internal/errs"
	"github.com/bibliotek/library-api/internal/export"
	"github.com/bibliotek/library-api/internal/model"
	repo_mocks "github.com/bibliotek/library-api/internal/repository/mocks"
	"github.com/bibliotek/library-api/internal/service"
	"github.com/bibliotek/library-api/pkg/auth"
	"github.com/bibliotek/library-api/pkg/kafka"
)

type capturedEvents struct {
	events []kafka.BorrowingEvent
	err    error
}

func (c *capturedEvents) Publish(ev kafka.BorrowingEvent) error {
	c.events = append(c.events, ev)
	return c.err
}

func newTestService(t *testing.T, repo *repo_mocks.MockRepository, events service.Events) *service.Service {
	t.Helper()
	tokens := auth.NewManager(auth.Config{JWTKey: "test-signing-key", TTL: time.Hour})
	exporter := export.NewWriter(t.TempDir())
	return service.NewService(repo, events, exporter, tokens, zap.NewNop())
}

func TestService_Checkout_PublishesEvent(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	repo := repo_mocks.NewMockRepository(c)

	brw := model.Borrowing{ID: 10, BookID: 2, BorrowerID: 3, Status: model.StatusBorrowed}
	repo.EXPECT().Checkout(context.Background(), int64(2), int64(3)).Return(brw, nil)

	events := &capturedEvents{}
	svc := newTestService(t, repo, events)

	got, err := svc.Checkout(context.Background(), model.CheckoutRequest{BookID: 2, BorrowerID: 3})
	require.NoError(t, err)
	require.Equal(t, brw, got)

	require.Len(t, events.events, 1)
	require.Equal(t, kafka.EventCheckedOut, events.events[0].Type)
	require.Equal(t, int64(10), events.events[0].BorrowingID)
	require.Equal(t, int64(2), events.events[0].BookID)
	require.Equal(t, int64(3), events.events[0].BorrowerID)
}

func TestService_Checkout_PublishFailureIgnored(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	repo := repo_mocks.NewMockRepository(c)

	repo.EXPECT().Checkout(context.Background(), int64(2), int64(3)).
		Return(model.Borrowing{ID: 10, BookID: 2, BorrowerID: 3}, nil)

	events := &capturedEvents{err: errors.New("broker down")}
	svc := newTestService(t, repo, events)

	_, err := svc.Checkout(context.Background(), model.CheckoutRequest{BookID: 2, BorrowerID: 3})
	require.NoError(t, err)
}

func TestService_Return_NoEventOnError(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	repo := repo_mocks.NewMockRepository(c)

	repo.EXPECT().Return(context.Background(), int64(5)).
		Return(model.Borrowing{}, errors.Wrap(errs.ErrConflict, "book has already been returned"))

	events := &capturedEvents{}
	svc := newTestService(t, repo, events)

	_, err := svc.Return(context.Background(), int64(5))
	require.ErrorIs(t, err, errs.ErrConflict)
	require.Empty(t, events.events)
}

func TestService_ListBorrowings(t *testing.T) {
	t.Parallel()
	var tests = []struct {
		name      string
		status    string
		page      int
		limit     int
		total     int
		wantPage  int
		wantLimit int
		wantPages int
		wantErr   error
	}{
		{name: "ok. defaults", status: "", page: 0, limit: 0, total: 25, wantPage: 1, wantLimit: 10, wantPages: 3},
		{name: "ok. borrowed", status: "borrowed", page: 2, limit: 5, total: 11, wantPage: 2, wantLimit: 5, wantPages: 3},
		{name: "ok. overdue derived", status: "overdue", page: 1, limit: 10, total: 0, wantPage: 1, wantLimit: 10, wantPages: 0},
		{name: "ok. limit capped", status: "", page: 1, limit: 500, total: 100, wantPage: 1, wantLimit: 100, wantPages: 1},
		{name: "err. unknown status", status: "lost", wantErr: errs.ErrValidation},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			repo := repo_mocks.NewMockRepository(c)
			if tt.wantErr == nil {
				repo.EXPECT().
					ListBorrowings(context.Background(), model.Status(tt.status), tt.wantPage, tt.wantLimit).
					Return([]model.BorrowingDetails{}, tt.total, nil)
			}
			svc := newTestService(t, repo, &capturedEvents{})

			list, err := svc.ListBorrowings(context.Background(), tt.status, tt.page, tt.limit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, model.Paging{
				Total: tt.total,
				Page:  tt.wantPage,
				Limit: tt.wantLimit,
				Pages: tt.wantPages,
			}, list.Paging)
		})
	}
}

func TestService_Login(t *testing.T) {
	t.Parallel()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := model.User{ID: 7, Name: "Max", Email: "max@lib.io", PasswordHash: string(hash)}

	var tests = []struct {
		name     string
		password string
		repoErr  error
		wantErr  error
	}{
		{name: "ok", password: "secret123"},
		{name: "err. wrong password", password: "wrongpass", wantErr: errs.ErrUnauthorized},
		{name: "err. unknown email", password: "secret123",
			repoErr: errors.Wrap(errs.ErrNotFound, "user not found"), wantErr: errs.ErrUnauthorized},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			repo := repo_mocks.NewMockRepository(c)
			if tt.repoErr != nil {
				repo.EXPECT().GetUserByEmail(context.Background(), "max@lib.io").Return(model.User{}, tt.repoErr)
			} else {
				repo.EXPECT().GetUserByEmail(context.Background(), "max@lib.io").Return(user, nil)
			}
			svc := newTestService(t, repo, &capturedEvents{})

			resp, err := svc.Login(context.Background(), model.LoginRequest{Email: "max@lib.io", Password: tt.password})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, user.ID, resp.User.ID)

			tokens := auth.NewManager(auth.Config{JWTKey: "test-signing-key", TTL: time.Hour})
			claims, err := tokens.ParseToken(resp.Token)
			require.NoError(t, err)
			require.Equal(t, user.ID, claims.UserID)
			require.Equal(t, user.Email, claims.Email)
		})
	}
}

func TestService_SearchBooks_Validation(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	repo := repo_mocks.NewMockRepository(c)
	svc := newTestService(t, repo, &capturedEvents{})

	_, err := svc.SearchBooks(context.Background(), "", "title")
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.SearchBooks(context.Background(), "dune", "publisher")
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestService_ExportPeriod(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	repo := repo_mocks.NewMockRepository(c)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	rows := []model.BorrowingDetails{{
		Borrowing: model.Borrowing{
			ID: 1, BookID: 2, BorrowerID: 3,
			BorrowedDate: start, DueDate: start.AddDate(0, 0, 14),
			Status: model.StatusBorrowed,
		},
		BookTitle: "Dune", BookAuthor: "Frank Herbert",
		BorrowerName: "Max", BorrowerEmail: "max@lib.io",
	}}
	repo.EXPECT().ByPeriod(context.Background(), start, end).Return(rows, nil)

	svc := newTestService(t, repo, &capturedEvents{})

	path, filename, err := svc.ExportPeriod(context.Background(), start, end, "")
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("borrowings_%s.csv", time.Now().Format(time.DateOnly)), filename)
	require.Equal(t, filename, filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "Dune")
}

func TestService_ExportOverdueLastMonth_BadFormat(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	repo := repo_mocks.NewMockRepository(c)
	repo.EXPECT().OverdueLastMonth(context.Background()).Return([]model.BorrowingDetails{}, nil)

	svc := newTestService(t, repo, &capturedEvents{})

	_, _, err := svc.ExportOverdueLastMonth(context.Background(), "pdf")
	require.ErrorIs(t, err, errs.ErrValidation)
}
