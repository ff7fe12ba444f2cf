package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/bibliotek/library-api/internal/model"
)

func (r *repository) OverdueLastMonth(ctx context.Context) ([]model.BorrowingDetails, error) {
	query, args, err := borrowingDetailsQuery().
		Where(overduePredicate()).
		Where(sq.Expr("b.borrowed_date >= current_date - interval '1 month'")).
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

func (r *repository) AllLastMonth(ctx context.Context) ([]model.BorrowingDetails, error) {
	query, args, err := borrowingDetailsQuery().
		Where(sq.Expr("b.borrowed_date >= current_date - interval '1 month'")).
		OrderBy("b.borrowed_date desc").
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

// ByPeriod returns borrowings within the inclusive [start, end] window.
// start > end yields an empty set, not an error.
func (r *repository) ByPeriod(ctx context.Context, start, end time.Time) ([]model.BorrowingDetails, error) {
	query, args, err := borrowingDetailsQuery().
		Where(sq.Expr("b.borrowed_date between ? and ?",
			start.Format(time.DateOnly), end.Format(time.DateOnly))).
		OrderBy("b.borrowed_date desc").
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
