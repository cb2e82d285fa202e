// Package auth provides the authentication function type used by the
// optional authentication hook.
package auth

import (
	"context"
	"strings"

	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/Keksclan/goRawrLambda/contextx"
)

// AuthFunc is a user-supplied callback that authenticates an API Gateway
// request. On success it returns the caller's identity; on failure it returns
// an error. Errors that are already *httperr.Error values are reported as-is,
// anything else becomes 401 UNAUTHORIZED.
//
// The library does NOT verify tokens; that is the responsibility of the
// AuthFunc implementation.
type AuthFunc func(ctx context.Context, req *composer.Request) (contextx.Actor, error)

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. It returns an empty string when the header is missing or uses a
// different scheme.
func BearerToken(req *composer.Request) string {
	h := req.Header("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
