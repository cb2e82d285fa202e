package hooks

import (
	"context"

	"github.com/Keksclan/goRawrLambda/auth"
	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/Keksclan/goRawrLambda/contextx"
	"github.com/Keksclan/goRawrLambda/httperr"
	"github.com/Keksclan/goRawrLambda/policy"
)

// errUnauthenticated is allocated once and wrapped with the cause.
var errUnauthenticated = httperr.Unauthorized("unauthenticated")

// authError keeps errors that already carry an HTTP meaning and turns
// everything else into 401.
func authError(err error) error {
	if _, ok := httperr.As(err); ok {
		return err
	}
	return errUnauthenticated.Wrap(err)
}

// Authenticate returns a before hook that calls fn and stores the resulting
// actor on the invocation. When r resolves the route to a group whose policy
// leaves AuthRequired unset, the request passes unauthenticated. Routes that
// match no group, and every route when r is nil, are always authenticated.
func Authenticate(fn auth.AuthFunc, r *policy.Resolver) composer.Hook {
	return func(ctx context.Context, req *composer.Request, inv *composer.Invocation, _ *composer.Response) (*composer.Response, error) {
		if name, pol, ok := r.ResolveRequest(req); ok {
			contextx.WithGroup(inv, name)
			if pol == nil || !pol.AuthRequired {
				return nil, nil
			}
		}

		actor, err := fn(ctx, req)
		if err != nil {
			return nil, authError(err)
		}
		contextx.WithActor(inv, actor)
		return nil, nil
	}
}
