package summary

import (
	"errors"

	"github.com/kcaldas/treepeek/pkg/value"
)

var (
	// ErrInvalidInput reports a non-finite number or a cyclic structure.
	ErrInvalidInput = value.ErrInvalidInput

	// ErrMaxNestingExceeded reports a document nested deeper than
	// Options.MaxDepthCap.
	ErrMaxNestingExceeded = errors.New("max nesting exceeded")

	// ErrInvalidBudget reports a target size that is zero or negative.
	ErrInvalidBudget = errors.New("invalid budget")
)
