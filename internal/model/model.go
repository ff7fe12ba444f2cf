package model

import (
	"time"
)

type Status string

const (
	StatusBorrowed Status = "borrowed"
	StatusReturned Status = "returned"
	// StatusOverdue is never stored: it is the read-time predicate
	// status = borrowed AND due_date < today.
	StatusOverdue Status = "overdue"
)

type Book struct {
	ID                int64     `json:"id" db:"id"`
	Title             string    `json:"title" db:"title"`
	Author            string    `json:"author" db:"author"`
	ISBN              string    `json:"isbn" db:"isbn"`
	TotalQuantity     int       `json:"totalQuantity" db:"total_quantity"`
	AvailableQuantity int       `json:"availableQuantity" db:"available_quantity"`
	ShelfLocation     *string   `json:"shelfLocation,omitempty" db:"shelf_location"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

type Borrower struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type Borrowing struct {
	ID           int64      `json:"id" db:"id"`
	BookID       int64      `json:"bookId" db:"book_id"`
	BorrowerID   int64      `json:"borrowerId" db:"borrower_id"`
	BorrowedDate time.Time  `json:"borrowedDate" db:"borrowed_date"`
	DueDate      time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate   *time.Time `json:"returnDate,omitempty" db:"return_date"`
	Status       Status     `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

// BorrowingDetails is the denormalized row shape used by listings and
// reports.
type BorrowingDetails struct {
	Borrowing
	BookTitle     string `json:"bookTitle" db:"book_title"`
	BookAuthor    string `json:"bookAuthor" db:"book_author"`
	BorrowerName  string `json:"borrowerName" db:"borrower_name"`
	BorrowerEmail string `json:"borrowerEmail" db:"borrower_email"`
}

type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type CreateBookRequest struct {
	Title         string  `json:"title" validate:"required"`
	Author        string  `json:"author" validate:"required"`
	ISBN          string  `json:"isbn" validate:"required"`
	TotalQuantity int     `json:"totalQuantity" validate:"required,min=1"`
	ShelfLocation *string `json:"shelfLocation"`
}

// BookPatch carries optional fields for a partial update; nil means keep the
// stored value.
type BookPatch struct {
	Title         *string `json:"title" validate:"omitempty,min=1"`
	Author        *string `json:"author" validate:"omitempty,min=1"`
	ISBN          *string `json:"isbn" validate:"omitempty,min=1"`
	TotalQuantity *int    `json:"totalQuantity" validate:"omitempty,min=1"`
	ShelfLocation *string `json:"shelfLocation"`
}

type CreateBorrowerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type BorrowerPatch struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type CheckoutRequest struct {
	BookID     int64 `json:"book_id" validate:"required"`
	BorrowerID int64 `json:"borrower_id" validate:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Paging struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type ListBorrowings struct {
	Items []BorrowingDetails `json:"items"`
	Paging
}

type ListBooks struct {
	Items []Book `json:"items"`
	Paging
}

type ListBorrowers struct {
	Items []Borrower `json:"items"`
	Paging
}

type Report struct {
	Borrowings []BorrowingDetails `json:"borrowings"`
	Count      int                `json:"count"`
}
