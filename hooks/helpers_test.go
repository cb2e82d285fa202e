package hooks

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"
)

func newRequest(method, path string) *composer.Request {
	return composer.NewRequest(events.APIGatewayProxyRequest{
		HTTPMethod: method,
		Path:       path,
		Headers:    map[string]string{},
	})
}

func okHandler(body string) composer.Handler {
	return func(context.Context, *composer.Request, *composer.Invocation) (*composer.Response, error) {
		return &composer.Response{StatusCode: 200, Headers: map[string]string{"Content-Type": "text/plain"}, Body: body}, nil
	}
}

func failHandler(err error) composer.Handler {
	return func(context.Context, *composer.Request, *composer.Invocation) (*composer.Response, error) {
		return nil, err
	}
}

// callBefore runs a single before hook the way the composer would.
func callBefore(t *testing.T, h composer.Hook, req *composer.Request) (*composer.Response, *composer.Invocation, error) {
	t.Helper()
	inv := composer.NewInvocation("inv-1")
	resp, err := h(t.Context(), req, inv, nil)
	return resp, inv, err
}

func decodeBody(t *testing.T, resp *composer.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &out))
	return out
}
