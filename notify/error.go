package notify

import (
	"errors"
)

var (
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrNilParameter      = errors.New("nil parameter")
	ErrUnsupported       = errors.New("notifications are not supported")
	ErrPermissionDenied  = errors.New("notification permission not granted")
	ErrIdGeneratorFailed = errors.New("id generation failed")
)
