package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/library/internal/library/domain"
	"github.com/aussiebroadwan/library/internal/library/store"
)

type BookService struct {
	Store store.Store
}

func (s *BookService) List(ctx context.Context) ([]domain.Book, error) {
	books, err := s.Store.Books().ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return books, nil
}

func (s *BookService) Get(ctx context.Context, id int64) (domain.Book, error) {
	if id <= 0 {
		return domain.Book{}, ErrInvalidBook
	}
	b, err := s.Store.Books().GetBook(ctx, id)
	if err != nil {
		return domain.Book{}, mapBookErr(err)
	}
	return b, nil
}

// Create trims every field, requires a title and stores blank optional fields
// as NULL.
func (s *BookService) Create(ctx context.Context, in domain.BookInput) (int64, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return 0, ErrInvalidBook
	}
	in.Author = normalize(in.Author)
	in.Category = normalize(in.Category)
	in.Description = normalize(in.Description)
	in.PDFURL = normalize(in.PDFURL)

	id, err := s.Store.Books().CreateBook(ctx, in)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return id, nil
}

// Update overwrites only the fields that are present and non-blank.
func (s *BookService) Update(ctx context.Context, id int64, patch domain.BookPatch) error {
	if id <= 0 {
		return ErrInvalidBook
	}
	patch = domain.BookPatch{
		Title:       normalize(patch.Title),
		Author:      normalize(patch.Author),
		Category:    normalize(patch.Category),
		Description: normalize(patch.Description),
		PDFURL:      normalize(patch.PDFURL),
	}
	if patch.IsEmpty() {
		return ErrNoBookFields
	}

	if err := s.Store.Books().UpdateBook(ctx, id, patch); err != nil {
		return mapBookErr(err)
	}
	return nil
}

func (s *BookService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidBook
	}
	if err := s.Store.Books().DeleteBook(ctx, id); err != nil {
		return mapBookErr(err)
	}
	return nil
}

func mapBookErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrBookNotFound
	}
	return fmt.Errorf("%w: %w", ErrStore, err)
}

// normalize trims s and turns blank values into nil.
func normalize(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
