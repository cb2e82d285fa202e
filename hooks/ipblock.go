package hooks

import (
	"context"

	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/Keksclan/goRawrLambda/httperr"
	"github.com/Keksclan/goRawrLambda/security"
)

// errBlocked is allocated once to avoid per-request allocations on the hot path.
var errBlocked = httperr.Forbidden("blocked")

// IPBlock returns a before hook that rejects requests with 403 when the
// blocker denies the caller's address.
func IPBlock(b *security.IPBlocker) composer.Hook {
	return func(_ context.Context, req *composer.Request, _ *composer.Invocation, _ *composer.Response) (*composer.Response, error) {
		if !b.Evaluate(req).Allowed {
			return nil, errBlocked
		}
		return nil, nil
	}
}
