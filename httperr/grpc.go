package httperr

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// grpcToHTTP maps gRPC status codes returned by downstream services to the
// HTTP status reported to the caller.
var grpcToHTTP = map[codes.Code]int{
	codes.InvalidArgument:    http.StatusBadRequest,
	codes.FailedPrecondition: http.StatusBadRequest,
	codes.OutOfRange:         http.StatusBadRequest,
	codes.Unauthenticated:    http.StatusUnauthorized,
	codes.PermissionDenied:   http.StatusForbidden,
	codes.NotFound:           http.StatusNotFound,
	codes.AlreadyExists:      http.StatusConflict,
	codes.Aborted:            http.StatusConflict,
	codes.ResourceExhausted:  http.StatusTooManyRequests,
	codes.Canceled:           499,
	codes.Unimplemented:      http.StatusNotImplemented,
	codes.Unavailable:        http.StatusServiceUnavailable,
	codes.DeadlineExceeded:   http.StatusGatewayTimeout,
}

// FromGRPC converts a gRPC status error into a KindHTTP *Error. Codes that
// carry no client-facing meaning (Unknown, Internal, DataLoss, OK) and
// non-status errors are not converted; ok is false for them.
func FromGRPC(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var gs interface{ GRPCStatus() *status.Status }
	if !errors.As(err, &gs) {
		return nil, false
	}
	st := gs.GRPCStatus()
	if st == nil {
		return nil, false
	}
	httpStatus, known := grpcToHTTP[st.Code()]
	if !known {
		return nil, false
	}
	return &Error{
		Kind:    KindHTTP,
		Status:  httpStatus,
		Code:    codeName(st.Code()),
		Message: st.Message(),
		Err:     err,
	}, true
}

// codeName renders a gRPC code in the SCREAMING_SNAKE form used for
// machine-readable error codes, e.g. NotFound -> NOT_FOUND.
func codeName(c codes.Code) string {
	name := c.String()
	out := make([]byte, 0, len(name)+4)
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if 'A' <= ch && ch <= 'Z' {
			if i > 0 {
				out = append(out, '_')
			}
			out = append(out, ch)
			continue
		}
		out = append(out, ch-('a'-'A'))
	}
	return string(out)
}
