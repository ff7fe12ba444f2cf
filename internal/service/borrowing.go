package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bibliotek/library-api/internal/errs"
	"github.com/bibliotek/library-api/internal/model"
	"github.com/bibliotek/library-api/pkg/kafka"
)

func (s *Service) Checkout(ctx context.Context, req model.CheckoutRequest) (model.Borrowing, error) {
	brw, err := s.repo.Checkout(ctx, req.BookID, req.BorrowerID)
	if err != nil {
		return model.Borrowing{}, err
	}
	s.publish(kafka.EventCheckedOut, brw)
	return brw, nil
}

func (s *Service) Return(ctx context.Context, borrowingID int64) (model.Borrowing, error) {
	brw, err := s.repo.Return(ctx, borrowingID)
	if err != nil {
		return model.Borrowing{}, err
	}
	s.publish(kafka.EventReturned, brw)
	return brw, nil
}

func (s *Service) publish(eventType kafka.EventType, brw model.Borrowing) {
	ev := kafka.BorrowingEvent{
		Type:        eventType,
		BorrowingID: brw.ID,
		BookID:      brw.BookID,
		BorrowerID:  brw.BorrowerID,
		At:          time.Now().UTC(),
	}
	if err := s.events.Publish(ev); err != nil {
		s.log.Warn("publish borrowing event",
			zap.String("type", string(eventType)),
			zap.Int64("borrowingID", brw.ID),
			zap.Error(err))
	}
}

func (s *Service) GetBorrowerBooks(ctx context.Context, borrowerID int64) ([]model.BorrowingDetails, error) {
	return s.repo.GetBorrowerBooks(ctx, borrowerID)
}

func (s *Service) GetOverdue(ctx context.Context) ([]model.BorrowingDetails, error) {
	return s.repo.GetOverdue(ctx)
}

func (s *Service) ListBorrowings(ctx context.Context, status string, page, limit int) (model.ListBorrowings, error) {
	switch model.Status(status) {
	case model.StatusBorrowed, model.StatusReturned, model.StatusOverdue, "":
	default:
		return model.ListBorrowings{}, errors.Wrapf(errs.ErrValidation, "unknown status %q", status)
	}
	page, limit = normalizePage(page, limit)

	items, total, err := s.repo.ListBorrowings(ctx, model.Status(status), page, limit)
	if err != nil {
		return model.ListBorrowings{}, err
	}
	return model.ListBorrowings{
		Items: items,
		Paging: model.Paging{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: (total + limit - 1) / limit,
		},
	}, nil
}
