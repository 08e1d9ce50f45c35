package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/library/internal/library/domain"
	"github.com/aussiebroadwan/library/internal/library/service"
	"github.com/aussiebroadwan/library/pkg/httpx"
	"github.com/aussiebroadwan/library/pkg/librarysdk"
	"github.com/aussiebroadwan/library/pkg/slogx"
)

// BooksHandler handles the catalog endpoints.
type BooksHandler struct {
	BookService *service.BookService
}

// HandleList handles GET /api/books
//
//	@Summary		List books
//	@Description	All books, newest first.
//	@Tags			Books
//	@Produce		json
//	@Success		200	{array}		librarysdk.Book
//	@Failure		500	{object}	librarysdk.MessageResponse	"Database error"
//	@Router			/api/books [get].
func (h *BooksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	books, err := h.BookService.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]librarysdk.Book, 0, len(books))
	for _, b := range books {
		out = append(out, toSDKBook(b))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /api/books/{id}
//
//	@Summary	Get a book
//	@Tags		Books
//	@Produce	json
//	@Param		id	path		int	true	"Book id"
//	@Success	200	{object}	librarysdk.Book
//	@Failure	400	{object}	librarysdk.MessageResponse	"Invalid id"
//	@Failure	404	{object}	librarysdk.MessageResponse	"Book not found"
//	@Failure	500	{object}	librarysdk.MessageResponse	"Database error"
//	@Router		/api/books/{id} [get].
func (h *BooksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := h.BookService.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKBook(b))
}

// HandleAdd handles POST /api/books/add
//
//	@Summary		Add a book
//	@Description	Title is required. Blank optional fields are stored as null.
//	@Tags			Books
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		librarysdk.BookInput			true	"Book fields"
//	@Success		201		{object}	librarysdk.CreateBookResponse	"message, id"
//	@Failure		400		{object}	librarysdk.MessageResponse		"Title is required"
//	@Failure		401		{object}	librarysdk.MessageResponse		"Unauthorized"
//	@Failure		500		{object}	librarysdk.MessageResponse		"Database error"
//	@Router			/api/books/add [post].
func (h *BooksHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req librarysdk.BookInput
	if !decodeBody(w, r, &req) {
		return
	}

	in := domain.BookInput{
		Author:      req.Author,
		Category:    req.Category,
		Description: req.Description,
		PDFURL:      req.PDFURL,
	}
	if req.Title != nil {
		in.Title = *req.Title
	}

	id, err := h.BookService.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if who, ok := httpx.IdentityFromContext(r.Context()); ok {
		slogx.FromContext(r.Context()).Info("book added", "book_id", id, "user_id", who.ID)
	}
	httpx.WriteJSON(w, http.StatusCreated, librarysdk.CreateBookResponse{
		Message: "Book added",
		ID:      id,
	})
}

// HandleUpdate handles PUT /api/books/update/{id}
//
//	@Summary		Update a book
//	@Description	Only the non-blank fields present in the body are changed.
//	@Tags			Books
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int							true	"Book id"
//	@Param			request	body		librarysdk.BookInput		true	"Fields to change"
//	@Success		200		{object}	librarysdk.MessageResponse	"Book updated"
//	@Failure		400		{object}	librarysdk.MessageResponse	"Invalid id | No fields to update"
//	@Failure		401		{object}	librarysdk.MessageResponse	"Unauthorized"
//	@Failure		404		{object}	librarysdk.MessageResponse	"Book not found"
//	@Failure		500		{object}	librarysdk.MessageResponse	"Database error"
//	@Router			/api/books/update/{id} [put].
func (h *BooksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req librarysdk.BookInput
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.BookService.Update(r.Context(), id, domain.BookPatch{
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Description: req.Description,
		PDFURL:      req.PDFURL,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Book updated")
}

// HandleDelete handles DELETE /api/books/delete/{id}
//
//	@Summary	Delete a book
//	@Tags		Books
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int							true	"Book id"
//	@Success	200	{object}	librarysdk.MessageResponse	"Book deleted"
//	@Failure	400	{object}	librarysdk.MessageResponse	"Invalid id"
//	@Failure	401	{object}	librarysdk.MessageResponse	"Unauthorized"
//	@Failure	404	{object}	librarysdk.MessageResponse	"Book not found"
//	@Failure	500	{object}	librarysdk.MessageResponse	"Database error"
//	@Router		/api/books/delete/{id} [delete].
func (h *BooksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.BookService.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Book deleted")
}

func (h *BooksHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidBook):
		httpx.WriteMessage(w, http.StatusBadRequest, "Title is required")
	case errors.Is(err, service.ErrNoBookFields):
		httpx.WriteMessage(w, http.StatusBadRequest, "No fields to update")
	case errors.Is(err, service.ErrBookNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "Book not found")
	default:
		slogx.FromContext(r.Context()).Error("books: store failure", "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, "Database error")
	}
}

// pathID parses the {id} wildcard as a positive integer, writing the 400
// itself when it is not one.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteMessage(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func toSDKBook(b domain.Book) librarysdk.Book {
	return librarysdk.Book{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Category:    b.Category,
		Description: b.Description,
		PDFURL:      b.PDFURL,
		CreatedAt:   b.CreatedAt,
	}
}
