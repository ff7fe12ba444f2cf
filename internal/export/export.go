// Package export writes report row sets to files in the configured
// directory, as CSV or XLSX.
package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/bibliotek/library-api/internal/errs"
	"github.com/bibliotek/library-api/internal/model"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const sheetName = "Borrowings"

var headers = []string{
	"Borrowing ID", "Book Title", "Author", "Borrower Name", "Borrower Email",
	"Borrowed Date", "Due Date", "Return Date", "Status",
}

type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write stores rows under the given filename and returns the full path.
func (w *Writer) Write(rows []model.BorrowingDetails, filename string, format Format) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(w.dir, filename)

	switch format {
	case FormatCSV:
		if err := writeCSV(rows, path); err != nil {
			return "", err
		}
	case FormatXLSX:
		if err := writeXLSX(rows, path); err != nil {
			return "", err
		}
	default:
		return "", errors.Wrapf(errs.ErrValidation, "unsupported export format %q", format)
	}
	return path, nil
}

func writeCSV(rows []model.BorrowingDetails, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(record(row, "")); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(rows []model.BorrowingDetails, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		rec := record(row, "Not returned")
		values := make([]interface{}, len(rec))
		for j, v := range rec {
			values[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func record(row model.BorrowingDetails, emptyReturn string) []string {
	returnDate := emptyReturn
	if row.ReturnDate != nil {
		returnDate = row.ReturnDate.Format(time.DateOnly)
	}
	return []string{
		strconv.FormatInt(row.ID, 10),
		row.BookTitle,
		row.BookAuthor,
		row.BorrowerName,
		row.BorrowerEmail,
		row.BorrowedDate.Format(time.DateOnly),
		row.DueDate.Format(time.DateOnly),
		returnDate,
		string(row.Status),
	}
}
