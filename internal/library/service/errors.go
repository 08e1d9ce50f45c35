package service

import "errors"

var (
	ErrValidation         = errors.New("validation_error")
	ErrDuplicateUser      = errors.New("duplicate_user")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrStore              = errors.New("store_error")
	ErrInternal           = errors.New("internal_error")

	ErrBookNotFound = errors.New("book_not_found")
	ErrInvalidBook  = errors.New("invalid_book")
	ErrNoBookFields = errors.New("no_book_fields")
)
