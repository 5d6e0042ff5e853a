// Package errs defines the sentinel errors shared across the gateway and
// their HTTP status mapping.
package errs

import (
	"errors"
	"net/http"
)

var (
	// ErrClientNotFound means no login session or bot matches the given key.
	ErrClientNotFound = errors.New("client not found")
	// ErrProtocolNotSupported means the requested protocol number has no
	// registered device profile.
	ErrProtocolNotSupported = errors.New("protocol not supported")

	ErrBotNotFound        = errors.New("bot not found")
	ErrPluginNotFound     = errors.New("plugin not found")
	ErrAlreadyLoggedIn    = errors.New("already logged in")
	ErrLoginFailed        = errors.New("login failed")
	ErrAccountFrozen      = errors.New("account frozen")
	ErrTooManySMSRequests = errors.New("too many sms requests")
	ErrQRCodeExpired      = errors.New("qrcode expired")
	ErrDriverClosed       = errors.New("driver closed")
	ErrMessageTooLong     = errors.New("message too long")
	ErrEmptyMessage       = errors.New("empty message")
	ErrUploadFailed       = errors.New("media upload failed")
)

// HTTPStatus maps a gateway error to the status code the management API
// returns. Caller mistakes are 400, everything else is 500.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrClientNotFound),
		errors.Is(err, ErrProtocolNotSupported),
		errors.Is(err, ErrBotNotFound),
		errors.Is(err, ErrPluginNotFound),
		errors.Is(err, ErrAlreadyLoggedIn),
		errors.Is(err, ErrEmptyMessage),
		errors.Is(err, ErrMessageTooLong):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
