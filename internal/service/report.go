package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bibliotek/library-api/internal/export"
	"github.com/bibliotek/library-api/internal/model"
)

func (s *Service) OverdueLastMonth(ctx context.Context) (model.Report, error) {
	rows, err := s.repo.OverdueLastMonth(ctx)
	if err != nil {
		return model.Report{}, err
	}
	return model.Report{Borrowings: rows, Count: len(rows)}, nil
}

func (s *Service) AllLastMonth(ctx context.Context) (model.Report, error) {
	rows, err := s.repo.AllLastMonth(ctx)
	if err != nil {
		return model.Report{}, err
	}
	return model.Report{Borrowings: rows, Count: len(rows)}, nil
}

func (s *Service) ByPeriod(ctx context.Context, start, end time.Time) (model.Report, error) {
	rows, err := s.repo.ByPeriod(ctx, start, end)
	if err != nil {
		return model.Report{}, err
	}
	return model.Report{Borrowings: rows, Count: len(rows)}, nil
}

func (s *Service) ExportOverdueLastMonth(ctx context.Context, format string) (string, string, error) {
	rows, err := s.repo.OverdueLastMonth(ctx)
	if err != nil {
		return "", "", err
	}
	return s.exportRows(rows, "overdue_borrowings", format)
}

func (s *Service) ExportAllLastMonth(ctx context.Context, format string) (string, string, error) {
	rows, err := s.repo.AllLastMonth(ctx)
	if err != nil {
		return "", "", err
	}
	return s.exportRows(rows, "all_borrowings", format)
}

func (s *Service) ExportPeriod(ctx context.Context, start, end time.Time, format string) (string, string, error) {
	rows, err := s.repo.ByPeriod(ctx, start, end)
	if err != nil {
		return "", "", err
	}
	return s.exportRows(rows, "borrowings", format)
}

// exportRows writes rows through the export sink and returns the file path
// and its download name, `<kind>_<date>.<ext>`.
func (s *Service) exportRows(rows []model.BorrowingDetails, kind, format string) (string, string, error) {
	if format == "" {
		format = string(export.FormatCSV)
	}
	filename := fmt.Sprintf("%s_%s.%s", kind, time.Now().Format(time.DateOnly), format)
	path, err := s.exporter.Write(rows, filename, export.Format(format))
	if err != nil {
		return "", "", err
	}
	return path, filename, nil
}
