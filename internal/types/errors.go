package types

import (
	"errors"
	"strings"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

var sentinels = []error{ErrValidation, ErrNotFound, ErrForbidden, ErrConflict, ErrUnauthorized}

// Message strips the sentinel prefix added by logger.ErrorWithType so the
// remaining text can be shown to API callers.
func Message(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return strings.TrimPrefix(msg, sentinel.Error()+": ")
		}
	}
	return msg
}
