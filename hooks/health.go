package hooks

import (
	"context"
	"net/http"
	"strings"

	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/Keksclan/goRawrLambda/ping"
)

// Health returns a before hook that answers GET (and HEAD) requests for path
// with the ping handler's JSON response. The optional "message" query
// parameter is passed to the handler. A nil h uses ping.DefaultHandler.
func Health(path string, h ping.Handler) composer.Hook {
	if h == nil {
		h = ping.DefaultHandler()
	}
	return func(ctx context.Context, req *composer.Request, _ *composer.Invocation, _ *composer.Response) (*composer.Response, error) {
		if req.Path != path {
			return nil, nil
		}
		if !strings.EqualFold(req.HTTPMethod, http.MethodGet) && !strings.EqualFold(req.HTTPMethod, http.MethodHead) {
			return nil, nil
		}

		out, err := h.Ping(ctx, &ping.PingRequest{Message: req.QueryStringParameters["message"]})
		if err != nil {
			return nil, err
		}
		return JSONResponse(http.StatusOK, out)
	}
}
