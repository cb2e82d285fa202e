package hooks

import (
	"encoding/json"
	"net/http"

	"github.com/Keksclan/goRawrLambda/composer"
)

// JSONResponse encodes body as JSON and returns it with status and a JSON
// content type.
func JSONResponse(status int, body any) (*composer.Response, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return &composer.Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(raw),
	}, nil
}

const genericErrorBody = `{"message":"An unexpected error occurred","code":"INTERNAL_SERVER_ERROR"}`

// genericError is the response for every failure that must not leak detail.
func genericError() *composer.Response {
	return &composer.Response{
		StatusCode: http.StatusInternalServerError,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       genericErrorBody,
	}
}

// withHeader returns a copy of resp with name set to value.
func withHeader(resp *composer.Response, name, value string) *composer.Response {
	out := composer.CloneResponse(resp)
	if out.Headers == nil {
		out.Headers = make(map[string]string, 1)
	}
	out.Headers[name] = value
	return out
}
