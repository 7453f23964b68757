package cookie

import "errors"

var (
	ErrEmptyName      = errors.New("cookie.empty_name")
	ErrInvalidName    = errors.New("cookie.invalid_name")
	ErrCookieNotFound = errors.New("cookie.not_found")
	ErrCookieTooLarge = errors.New("cookie.too_large")
)
