package policy

import (
	"strings"

	"github.com/Keksclan/goRawrLambda/composer"
)

// RouteKey renders req as "METHOD /path", the string group rules match
// against. The method is upper-cased; an empty path becomes "/".
func RouteKey(req *composer.Request) string {
	path := req.Path
	if path == "" {
		path = "/"
	}
	return strings.ToUpper(req.HTTPMethod) + " " + path
}
