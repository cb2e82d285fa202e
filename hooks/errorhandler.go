package hooks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/Keksclan/goRawrLambda/httperr"
	"go.uber.org/zap"
)

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Meta    any    `json:"meta,omitempty"`
}

// ErrorHandler returns an on-error hook that renders the invocation's failure
// as a JSON response.
//
// Recognized errors (*httperr.Error anywhere in the chain, or a gRPC status
// from a downstream call) keep their status and code. Anything else is logged
// with full detail and answered with a generic 500 that reveals nothing. A
// failure while rendering is logged and answered with the same generic 500.
func ErrorHandler(log *zap.Logger) composer.Hook {
	if log == nil {
		log = zap.NewNop()
	}
	return func(_ context.Context, req *composer.Request, inv *composer.Invocation, _ *composer.Response) (resp *composer.Response, err error) {
		cause := inv.Err()
		if cause == nil {
			return nil, nil
		}

		defer func() {
			if r := recover(); r != nil {
				log.Error("error handler itself encountered an error",
					zap.String("request_id", inv.RequestID),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
					zap.NamedError("original_error", cause),
				)
				resp, err = genericError(), nil
			}
		}()

		resp, renderErr := render(cause)
		if renderErr != nil {
			log.Error("error handler itself encountered an error",
				zap.String("request_id", inv.RequestID),
				zap.Error(renderErr),
				zap.NamedError("original_error", cause),
			)
			return genericError(), nil
		}
		if resp != nil {
			return resp, nil
		}

		fields := []zap.Field{
			zap.String("request_id", inv.RequestID),
			zap.String("method", req.HTTPMethod),
			zap.String("path", req.Path),
			zap.Error(cause),
		}
		var pe *composer.PanicError
		if errors.As(cause, &pe) {
			fields = append(fields, zap.ByteString("stack", pe.Stack))
		}
		log.Error("unhandled error", fields...)
		return genericError(), nil
	}
}

// render maps a recognized error to its response. It returns (nil, nil) for
// unrecognized errors.
func render(cause error) (*composer.Response, error) {
	he, ok := httperr.As(cause)
	if !ok {
		he, ok = httperr.FromGRPC(cause)
	}
	if !ok {
		return nil, nil
	}

	switch he.Kind {
	case httperr.KindHTTP:
		status := he.Status
		if status < 400 || status > 599 {
			return nil, fmt.Errorf("hooks: invalid error status %d", status)
		}
		return JSONResponse(status, errorBody{Message: he.Message, Code: he.Code, Meta: he.Meta})
	case httperr.KindValidation:
		issues := he.Issues
		if issues == nil {
			issues = []httperr.Issue{}
		}
		return JSONResponse(http.StatusBadRequest, errorBody{Message: he.Message, Code: he.Code, Meta: issues})
	default:
		return nil, fmt.Errorf("hooks: unknown error kind %v", he.Kind)
	}
}
