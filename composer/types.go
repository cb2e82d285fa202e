// Package composer wraps a terminal handler with four ordered hook phases
// (before, after, on-error, finally) so cross-cutting concerns such as body
// decoding, CORS headers and error formatting can be layered around a
// serverless HTTP handler without touching it.
//
//	c := composer.New()
//	c.Before(hooks.JSONBody())
//	c.OnError(hooks.ErrorHandler(logger))
//	c.Finally(hooks.CORS(hooks.DefaultCORSConfig))
//	lambda.Start(c.Wrap(myHandler).Lambda())
package composer

import (
	"context"
	"maps"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Request is an API Gateway proxy event. Hooks may rewrite its fields in place
// before the terminal handler runs; body decoders store the decoded body in
// Payload and leave Body untouched.
type Request struct {
	events.APIGatewayProxyRequest

	// Payload holds the decoded request body, if a hook decoded it.
	Payload any
}

// Response is the API Gateway proxy response. Hooks pass it around as a
// pointer; a nil *Response is the empty response.
type Response = events.APIGatewayProxyResponse

// Hook is a unit of cross-cutting work run in one of the four phases. It may
// mutate req and inv in place. Returning a non-nil response short-circuits the
// before phase, produces the error response in the on-error phase, and
// replaces the current response in the after and finally phases. Returning
// (nil, nil) means "nothing to do".
type Hook func(ctx context.Context, req *Request, inv *Invocation, resp *Response) (*Response, error)

// Handler is the terminal handler wrapped by a Composer. A wrapped handler has
// the same shape, so it can be wrapped again or adapted to a host runtime.
type Handler func(ctx context.Context, req *Request, inv *Invocation) (*Response, error)

// NewRequest wraps a raw API Gateway event.
func NewRequest(ev events.APIGatewayProxyRequest) *Request {
	return &Request{APIGatewayProxyRequest: ev}
}

// Header returns the first value of the named request header. The lookup is
// case-insensitive because API Gateway forwards header names as sent by the
// client.
func (r *Request) Header(name string) string {
	if v, ok := r.Headers[name]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	for k, vs := range r.MultiValueHeaders {
		if strings.EqualFold(k, name) && len(vs) > 0 {
			return vs[0]
		}
	}
	return ""
}

// CloneResponse returns a copy of resp whose header maps can be modified
// without affecting the original. It returns nil for a nil resp.
func CloneResponse(resp *Response) *Response {
	if resp == nil {
		return nil
	}
	out := *resp
	out.Headers = maps.Clone(resp.Headers)
	if resp.MultiValueHeaders != nil {
		out.MultiValueHeaders = make(map[string][]string, len(resp.MultiValueHeaders))
		for k, v := range resp.MultiValueHeaders {
			out.MultiValueHeaders[k] = append([]string(nil), v...)
		}
	}
	return &out
}
