package hooks

import (
	"context"

	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/Keksclan/goRawrLambda/httperr"
)

// RequireFields returns a before hook that checks the decoded JSON payload
// for the given top-level fields. Missing fields are reported together as a
// validation error, one issue per field. It must run after JSONBody.
func RequireFields(fields ...string) composer.Hook {
	return func(_ context.Context, req *composer.Request, _ *composer.Invocation, _ *composer.Response) (*composer.Response, error) {
		obj, ok := req.Payload.(map[string]any)
		if !ok {
			return nil, httperr.Validation(httperr.Issue{Path: "", Message: "body must be a JSON object"})
		}

		var issues []httperr.Issue
		for _, f := range fields {
			if v, ok := obj[f]; !ok || v == nil {
				issues = append(issues, httperr.Issue{Path: f, Message: "is required"})
			}
		}
		if len(issues) > 0 {
			return nil, httperr.Validation(issues...)
		}
		return nil, nil
	}
}
