package value

import "errors"

var (
	// ErrInvalidInput reports a value that cannot be represented, such as a
	// non-finite number or a cyclic structure.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSyntax reports a document that could not be decoded.
	ErrSyntax = errors.New("malformed document")

	// ErrPathNotFound reports a selection path that matched nothing.
	ErrPathNotFound = errors.New("path not found")
)
