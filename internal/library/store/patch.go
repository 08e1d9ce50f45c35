package store

import (
	"strconv"
	"strings"

	"github.com/aussiebroadwan/library/internal/library/domain"
)

// Placeholder renders the n-th (1-based) bind parameter for a SQL dialect.
type Placeholder func(n int) string

// QuestionMark is the sqlite placeholder style.
func QuestionMark(int) string { return "?" }

// Dollar is the postgres placeholder style.
func Dollar(n int) string { return "$" + strconv.Itoa(n) }

// BuildBookUpdate renders an UPDATE for the non-nil fields of patch. Column
// names come from a fixed list, never from input. ok is false when the patch
// is empty.
func BuildBookUpdate(id int64, patch domain.BookPatch, ph Placeholder) (query string, args []any, ok bool) {
	cols := []struct {
		name string
		val  *string
	}{
		{"title", patch.Title},
		{"author", patch.Author},
		{"category", patch.Category},
		{"description", patch.Description},
		{"pdf_url", patch.PDFURL},
	}

	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		if c.val == nil {
			continue
		}
		args = append(args, *c.val)
		sets = append(sets, c.name+" = "+ph(len(args)))
	}
	if len(sets) == 0 {
		return "", nil, false
	}

	args = append(args, id)
	query = "UPDATE books SET " + strings.Join(sets, ", ") + " WHERE id = " + ph(len(args))
	return query, args, true
}
