package api

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"

	"github.com/lorahub/chirpstack-bridge/internal/apierror"
)

var codeToStatus = map[codes.Code]int{
	codes.InvalidArgument:  http.StatusBadRequest,
	codes.NotFound:         http.StatusNotFound,
	codes.AlreadyExists:    http.StatusConflict,
	codes.PermissionDenied: http.StatusForbidden,
	codes.Unauthenticated:  http.StatusUnauthorized,
	codes.DeadlineExceeded: http.StatusGatewayTimeout,
	codes.Unavailable:      http.StatusBadGateway,
	codes.Unimplemented:    http.StatusNotImplemented,
}

type badBodyError struct {
	err error
}

func (e badBodyError) Error() string {
	return "decode request body error: " + e.err.Error()
}

func errBadBody(err error) error {
	return badBodyError{err: err}
}

// writeError maps a core error onto an HTTP response. The upstream
// status or rpc code decides the status; caller errors map to 400.
func writeError(w http.ResponseWriter, err error) {
	var (
		missingField apierror.MissingFieldError
		requestShape apierror.RequestShapeError
		translation  apierror.TranslationError
		upstreamHTTP apierror.UpstreamHTTPError
		upstreamRPC  apierror.UpstreamRPCError
		badBody      badBodyError
	)

	status := http.StatusInternalServerError

	switch {
	case errors.As(err, &missingField), errors.As(err, &requestShape), errors.As(err, &translation), errors.As(err, &badBody):
		status = http.StatusBadRequest
	case errors.As(err, &upstreamHTTP):
		status = upstreamHTTP.Status
	case errors.As(err, &upstreamRPC):
		if s, ok := codeToStatus[upstreamRPC.Code]; ok {
			status = s
		}
	}

	writeJSON(w, status, map[string]interface{}{
		"error": err.Error(),
	})
}
