package domain

import "errors"

// Sentinel errors returned by repositories. Usecases translate them into
// the HTTP-coded apperror taxonomy.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("duplicate resource")
)
