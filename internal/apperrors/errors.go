package apperrors

import "errors"

// ErrNotFound indicates that a referenced entity is absent.
var ErrNotFound = errors.New("resource not found")

// ErrForbidden indicates the actor lacks ownership or role for the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrBadRequest indicates malformed or invalid input.
var ErrBadRequest = errors.New("invalid request")

// ErrConflict indicates an attempt to create a resource that already exists.
var ErrConflict = errors.New("resource already exists")
