package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/Keksclan/goRawrLambda/hooks"
	"github.com/Keksclan/goRawrLambda/httperr"
	"github.com/Keksclan/goRawrLambda/policy"
)

// router dispatches on the route key ("GET /hello").
type router map[string]composer.Handler

func (rt router) handle(ctx context.Context, req *composer.Request, inv *composer.Invocation) (*composer.Response, error) {
	key := policy.RouteKey(req)
	h, ok := rt[key]
	if !ok {
		return nil, httperr.NotFound("no route for " + key).WithMeta(map[string]string{"route": key})
	}
	return h(ctx, req, inv)
}

func demoRoutes() router {
	// /echo carries its own validation phase; failures bubble up to the
	// outer error handler.
	echo := composer.New().
		Before(hooks.RequireFields("message")).
		Wrap(echoHandler)

	return router{
		"GET /hello": helloHandler,
		"POST /echo": echo,
		"GET /boom":  boomHandler,
	}
}

func helloHandler(_ context.Context, req *composer.Request, inv *composer.Invocation) (*composer.Response, error) {
	name := req.QueryStringParameters["name"]
	if name == "" {
		name = "world"
	}
	return hooks.JSONResponse(http.StatusOK, map[string]string{
		"message":    "hello, " + name,
		"request_id": inv.RequestID,
	})
}

func echoHandler(_ context.Context, req *composer.Request, _ *composer.Invocation) (*composer.Response, error) {
	return hooks.JSONResponse(http.StatusOK, req.Payload)
}

func boomHandler(context.Context, *composer.Request, *composer.Invocation) (*composer.Response, error) {
	panic("boom")
}

// demoPolicies caches /hello responses and gives /echo its own rate limit.
func demoPolicies() *policy.Resolver {
	return policy.NewResolver(
		policy.Group("hello").Exact("GET /hello").Policy(policy.Policy{CacheTTL: 10 * time.Second}),
		policy.Group("echo").Exact("POST /echo").Policy(policy.Policy{
			RateLimit: &policy.RateLimitRule{Rate: 20, Window: time.Second},
		}),
	)
}
