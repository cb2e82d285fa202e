package hooks

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"mime"
	"strings"

	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/Keksclan/goRawrLambda/httperr"
)

// errInvalidJSON is allocated once and wrapped with the decoding cause.
var errInvalidJSON = httperr.BadRequest("INVALID_JSON_BODY", "Invalid JSON in request body.")

// JSONBody returns a before hook that decodes a JSON request body into
// req.Payload. Bodies flagged as base64 are decoded first. Requests without a
// body or with another media type pass through untouched.
func JSONBody() composer.Hook {
	return func(_ context.Context, req *composer.Request, _ *composer.Invocation, _ *composer.Response) (*composer.Response, error) {
		if req.Body == "" || !isJSON(req.Header("Content-Type")) {
			return nil, nil
		}

		raw := []byte(req.Body)
		if req.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(req.Body)
			if err != nil {
				return nil, errInvalidJSON.Wrap(err)
			}
			raw = decoded
		}

		var payload any
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, errInvalidJSON.Wrap(err)
		}
		req.Payload = payload
		return nil, nil
	}
}

// isJSON accepts application/json and structured +json types, ignoring
// parameters such as charset.
func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || (strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json"))
}
