package hooks

import (
	"context"

	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/google/uuid"
)

// RequestIDHeaderName is read from requests and echoed on responses.
const RequestIDHeaderName = "X-Request-Id"

// RequestID returns a before hook that settles inv.RequestID. The first
// non-empty source wins: the X-Request-Id header, the API Gateway request
// context, the id the invocation was created with, then a new UUID.
func RequestID() composer.Hook {
	return func(_ context.Context, req *composer.Request, inv *composer.Invocation, _ *composer.Response) (*composer.Response, error) {
		switch {
		case req.Header(RequestIDHeaderName) != "":
			inv.RequestID = req.Header(RequestIDHeaderName)
		case req.RequestContext.RequestID != "":
			inv.RequestID = req.RequestContext.RequestID
		case inv.RequestID != "":
		default:
			inv.RequestID = uuid.NewString()
		}
		return nil, nil
	}
}

// RequestIDHeader returns a finally hook that echoes inv.RequestID as the
// X-Request-Id response header.
func RequestIDHeader() composer.Hook {
	return func(_ context.Context, _ *composer.Request, inv *composer.Invocation, resp *composer.Response) (*composer.Response, error) {
		if resp == nil || inv.RequestID == "" {
			return nil, nil
		}
		return withHeader(resp, RequestIDHeaderName, inv.RequestID), nil
	}
}
