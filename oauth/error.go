package oauth

import (
	"errors"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNilParameter     = errors.New("nil parameter")
	ErrMissingTokens    = errors.New("access_token and refresh_token are missing")
	ErrInvalidCACert    = errors.New("invalid CA certificate")
	ErrExchangeFailed   = errors.New("token exchange failed")
)
