package models

import (
	"errors"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrMissingAPIKey   = errors.New("missing API key")
	ErrUnknownProvider = errors.New("unknown provider")
	ErrEmptyResponse   = errors.New("empty response from provider")
)
