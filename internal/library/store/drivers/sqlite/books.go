package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/library/internal/library/domain"
	"github.com/aussiebroadwan/library/internal/library/store"
)

const bookColumns = `id, title, author, category, description, pdf_url, created_at`

type booksRepo struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (domain.Book, error) {
	var (
		b                                     domain.Book
		author, category, description, pdfURL sql.NullString
	)
	if err := row.Scan(&b.ID, &b.Title, &author, &category, &description, &pdfURL, &b.CreatedAt); err != nil {
		return domain.Book{}, err
	}
	b.Author = mapNullStringPtr(author)
	b.Category = mapNullStringPtr(category)
	b.Description = mapNullStringPtr(description)
	b.PDFURL = mapNullStringPtr(pdfURL)
	return b, nil
}

func (r *booksRepo) ListBooks(ctx context.Context) ([]domain.Book, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]domain.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *booksRepo) GetBook(ctx context.Context, id int64) (domain.Book, error) {
	b, err := scanBook(r.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id))
	if err != nil {
		return domain.Book{}, mapNotFound(err)
	}
	return b, nil
}

func (r *booksRepo) CreateBook(ctx context.Context, in domain.BookInput) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO books (title, author, category, description, pdf_url) VALUES (?, ?, ?, ?, ?)`,
		in.Title,
		mapOptionalString(in.Author),
		mapOptionalString(in.Category),
		mapOptionalString(in.Description),
		mapOptionalString(in.PDFURL),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *booksRepo) UpdateBook(ctx context.Context, id int64, patch domain.BookPatch) error {
	query, args, ok := store.BuildBookUpdate(id, patch, store.QuestionMark)
	if !ok {
		return nil
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return mapAffected(res)
}

func (r *booksRepo) DeleteBook(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return mapAffected(res)
}
