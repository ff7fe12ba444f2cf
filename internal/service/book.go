package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/bibliotek/library-api/internal/errs"
	"github.com/bibliotek/library-api/internal/model"
)

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	return s.repo.CreateBook(ctx, req)
}

func (s *Service) GetBook(ctx context.Context, id int64) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) ListBooks(ctx context.Context, page, limit int) (model.ListBooks, error) {
	page, limit = normalizePage(page, limit)
	return s.repo.ListBooks(ctx, page, limit)
}

func (s *Service) SearchBooks(ctx context.Context, query, field string) ([]model.Book, error) {
	if query == "" {
		return nil, errors.Wrap(errs.ErrValidation, "search query is empty")
	}
	switch field {
	case "title", "author", "isbn":
	default:
		return nil, errors.Wrapf(errs.ErrValidation, "unknown search field %q", field)
	}
	return s.repo.SearchBooks(ctx, query, field)
}

func (s *Service) UpdateBook(ctx context.Context, id int64, patch model.BookPatch) (model.Book, error) {
	return s.repo.UpdateBook(ctx, id, patch)
}

func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	return s.repo.DeleteBook(ctx, id)
}

func (s *Service) CreateBorrower(ctx context.Context, req model.CreateBorrowerRequest) (model.Borrower, error) {
	return s.repo.CreateBorrower(ctx, req)
}

func (s *Service) GetBorrower(ctx context.Context, id int64) (model.Borrower, error) {
	return s.repo.GetBorrower(ctx, id)
}

func (s *Service) ListBorrowers(ctx context.Context, page, limit int) (model.ListBorrowers, error) {
	page, limit = normalizePage(page, limit)
	return s.repo.ListBorrowers(ctx, page, limit)
}

func (s *Service) UpdateBorrower(ctx context.Context, id int64, patch model.BorrowerPatch) (model.Borrower, error) {
	return s.repo.UpdateBorrower(ctx, id, patch)
}

func (s *Service) DeleteBorrower(ctx context.Context, id int64) error {
	return s.repo.DeleteBorrower(ctx, id)
}
