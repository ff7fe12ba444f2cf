package export_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bibliotek/library-api/internal/errs"
	"github.com/bibliotek/library-api/internal/export"
	"github.com/bibliotek/library-api/internal/model"
)

func testRows() []model.BorrowingDetails {
	borrowed := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	returned := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	return []model.BorrowingDetails{
		{
			Borrowing: model.Borrowing{
				ID: 1, BookID: 2, BorrowerID: 3,
				BorrowedDate: borrowed, DueDate: borrowed.AddDate(0, 0, 14),
				ReturnDate: &returned, Status: model.StatusReturned,
			},
			BookTitle: "Dune", BookAuthor: "Frank Herbert",
			BorrowerName: "Max", BorrowerEmail: "max@lib.io",
		},
		{
			Borrowing: model.Borrowing{
				ID: 2, BookID: 4, BorrowerID: 3,
				BorrowedDate: borrowed, DueDate: borrowed.AddDate(0, 0, 14),
				Status: model.StatusBorrowed,
			},
			BookTitle: "Neuromancer", BookAuthor: "William Gibson",
			BorrowerName: "Max", BorrowerEmail: "max@lib.io",
		},
	}
}

func TestWriter_CSV(t *testing.T) {
	t.Parallel()
	w := export.NewWriter(t.TempDir())

	path, err := w.Write(testRows(), "report.csv", export.FormatCSV)
	require.NoError(t, err)
	require.Equal(t, "report.csv", filepath.Base(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, "Borrowing ID", records[0][0])
	require.Equal(t, "Status", records[0][8])

	require.Equal(t, []string{
		"1", "Dune", "Frank Herbert", "Max", "max@lib.io",
		"2026-07-01", "2026-07-15", "2026-07-10", "returned",
	}, records[1])
	// open borrowing has an empty return date
	require.Equal(t, "", records[2][7])
	require.Equal(t, "borrowed", records[2][8])
}

func TestWriter_XLSX(t *testing.T) {
	t.Parallel()
	w := export.NewWriter(t.TempDir())

	path, err := w.Write(testRows(), "report.xlsx", export.FormatXLSX)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue("Borrowings", cell)
		require.NoError(t, err)
		return v
	}
	require.Equal(t, "Borrowing ID", get("A1"))
	require.Equal(t, "Dune", get("B2"))
	require.Equal(t, "2026-07-10", get("H2"))
	require.Equal(t, "Not returned", get("H3"))
	require.Equal(t, "borrowed", get("I3"))
}

func TestWriter_EmptyRows(t *testing.T) {
	t.Parallel()
	w := export.NewWriter(t.TempDir())

	path, err := w.Write(nil, "empty.csv", export.FormatCSV)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestWriter_UnknownFormat(t *testing.T) {
	t.Parallel()
	w := export.NewWriter(t.TempDir())

	_, err := w.Write(testRows(), "report.pdf", export.Format("pdf"))
	require.ErrorIs(t, err, errs.ErrValidation)
}
