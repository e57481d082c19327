// Package apierror defines the error types returned by the bridge core.
// The outer layers match on these with errors.As to decide how a failure
// maps to their own surface.
package apierror

import (
	"fmt"

	"google.golang.org/grpc/codes"
)

// MissingFieldError is returned when a required field is absent from the
// caller-supplied payload. It is raised before any upstream call is made.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// RequestShapeError is returned when caller input can not be mapped onto
// the upstream request shape (unknown field, wrong type, malformed id).
type RequestShapeError struct {
	Field  string
	Reason string
}

func (e RequestShapeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("request shape error: field %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("request shape error: %s", e.Reason)
}

// TranslationError is returned when a base64 payload can not be decoded
// to bytes.
type TranslationError struct {
	Err error
}

func (e TranslationError) Error() string {
	return fmt.Sprintf("payload translation error: %s", e.Err)
}

func (e TranslationError) Unwrap() error {
	return e.Err
}

// UpstreamHTTPError is returned when the REST upstream responded with a
// non-2xx status. Body holds the upstream response body unchanged.
type UpstreamHTTPError struct {
	Status int
	Body   []byte
}

func (e UpstreamHTTPError) Error() string {
	return fmt.Sprintf("upstream http error: status %d: %s", e.Status, string(e.Body))
}

// UpstreamRPCError is returned when a gRPC call to the upstream failed.
// Code holds the transport status code so that callers can distinguish
// retryable failures (Unavailable, DeadlineExceeded) from terminal ones.
type UpstreamRPCError struct {
	Code    codes.Code
	Message string
}

func (e UpstreamRPCError) Error() string {
	return fmt.Sprintf("upstream rpc error: code %s: %s", e.Code, e.Message)
}
