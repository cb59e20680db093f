package app

import (
	"errors"

	"github.com/Sahithkumar-VU21CSEN0100489/chat-assistant/internal/backend"
)

// ValidationError is a client-detected precondition failure, raised before
// any network call is made.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

// FailureMessage maps an error to the string shown to the user: validation
// and backend-rejection messages pass through verbatim, any transport
// failure collapses to a generic message.
func FailureMessage(err error) string {
	var v ValidationError
	if errors.As(err, &v) {
		return string(v)
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Network error"
}
