package domain

import "time"

type Book struct {
	ID          int64
	Title       string
	Author      *string
	Category    *string
	Description *string
	PDFURL      *string
	CreatedAt   time.Time
}

// BookInput carries the columns of a new book. Nil optional fields are stored
// as NULL.
type BookInput struct {
	Title       string
	Author      *string
	Category    *string
	Description *string
	PDFURL      *string
}

// BookPatch lists the columns to overwrite. Nil fields are left untouched.
type BookPatch struct {
	Title       *string
	Author      *string
	Category    *string
	Description *string
	PDFURL      *string
}

// IsEmpty reports whether the patch changes nothing.
func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.Category == nil &&
		p.Description == nil && p.PDFURL == nil
}
