package hooks

import (
	"context"
	"maps"
	"net/http"
	"strings"

	"github.com/Keksclan/goRawrLambda/composer"
)

// CORSConfig holds the values of the three Access-Control headers.
type CORSConfig struct {
	AllowOrigin  string
	AllowMethods string
	AllowHeaders string
}

// DefaultCORSConfig opens the API to every origin.
var DefaultCORSConfig = CORSConfig{
	AllowOrigin:  "*",
	AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	AllowHeaders: "Content-Type, Authorization",
}

func (c CORSConfig) headers() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  c.AllowOrigin,
		"Access-Control-Allow-Methods": c.AllowMethods,
		"Access-Control-Allow-Headers": c.AllowHeaders,
	}
}

// CORS returns a hook that adds the CORS headers to the current response,
// keeping every header already present and overriding same-named ones. With
// no response, an OPTIONS request is answered with 204 and an empty body.
//
// It is meant for the finally phase but also works as a before hook, where
// it answers preflight requests early.
func CORS(cfg CORSConfig) composer.Hook {
	h := cfg.headers()
	return func(_ context.Context, req *composer.Request, _ *composer.Invocation, resp *composer.Response) (*composer.Response, error) {
		if resp != nil {
			out := composer.CloneResponse(resp)
			if out.Headers == nil {
				out.Headers = make(map[string]string, len(h))
			}
			maps.Copy(out.Headers, h)
			return out, nil
		}
		if strings.EqualFold(req.HTTPMethod, http.MethodOptions) {
			return &composer.Response{
				StatusCode: http.StatusNoContent,
				Headers:    maps.Clone(h),
				Body:       "",
			}, nil
		}
		return nil, nil
	}
}
