package quote

import (
	"errors"
)

var (
	ErrInvalidCandidate = errors.New("quote text and category must be non-empty")
	ErrNotAList         = errors.New("import payload is not a list")
	ErrEmptySet         = errors.New("quote set is empty")
)
