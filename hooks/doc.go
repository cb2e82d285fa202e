// Package hooks provides ready-made hooks for composer.Composer: JSON body
// decoding, CORS headers, error formatting, request ids, access logging and
// the request gates (IP blocking, rate limiting, authentication, circuit
// breaking, response caching, health checks).
//
// Gates report rejections as *httperr.Error values so that the ErrorHandler
// hook renders them like any other domain error.
package hooks
