// Package errors provides domain-specific error types and sentinel errors
// for the webhook bridge.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is() to check these errors in your code.
var (
	// ErrVerificationFailed indicates a webhook subscription handshake was rejected.
	ErrVerificationFailed = errors.New("webhook verification failed")

	// ErrMalformedEvent indicates an inbound webhook body could not be decoded.
	ErrMalformedEvent = errors.New("malformed webhook event")

	// ErrSendFailed indicates the Cloud API rejected an outbound message.
	ErrSendFailed = errors.New("send message failed")
)

// maxBodyInError bounds how much of a provider response is kept in SendError.
const maxBodyInError = 512

// SendError describes a non-2xx response from the send-message endpoint.
type SendError struct {
	Operation  string // e.g. "button_prompt", "ug_list", "text"
	StatusCode int
	Body       string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send %s: status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// Is makes errors.Is(err, ErrSendFailed) true for any *SendError.
func (e *SendError) Is(target error) bool {
	return target == ErrSendFailed
}

// NewSendError creates a SendError, truncating long response bodies.
func NewSendError(operation string, statusCode int, body []byte) *SendError {
	text := string(body)
	if len(text) > maxBodyInError {
		text = text[:maxBodyInError] + "..."
	}
	return &SendError{
		Operation:  operation,
		StatusCode: statusCode,
		Body:       text,
	}
}

// StatusCode extracts the provider HTTP status from err, or 0 if err is not a SendError.
func StatusCode(err error) int {
	var sendErr *SendError
	if errors.As(err, &sendErr) {
		return sendErr.StatusCode
	}
	return 0
}
