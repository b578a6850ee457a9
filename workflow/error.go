package workflow

import (
	"errors"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNilParameter     = errors.New("nil parameter")
	ErrNotFound         = errors.New("workflow not found")
	ErrBadResponse      = errors.New("unexpected response from pipeline service")
)
