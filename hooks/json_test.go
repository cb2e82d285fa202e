package hooks

import (
	"encoding/base64"
	"testing"

	"github.com/Keksclan/goRawrLambda/httperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONBody_DecodesObject(t *testing.T) {
	req := newRequest("POST", "/echo")
	req.Headers["Content-Type"] = "application/json"
	req.Body = `{"a":1}`

	resp, _, err := callBefore(t, JSONBody(), req)
	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, map[string]any{"a": float64(1)}, req.Payload)
}

func TestJSONBody_Base64(t *testing.T) {
	req := newRequest("POST", "/echo")
	req.Headers["content-type"] = "application/json; charset=utf-8"
	req.Body = base64.StdEncoding.EncodeToString([]byte(`{"b":[true]}`))
	req.IsBase64Encoded = true

	_, _, err := callBefore(t, JSONBody(), req)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"b": []any{true}}, req.Payload)
}

func TestJSONBody_Malformed(t *testing.T) {
	req := newRequest("POST", "/echo")
	req.Headers["Content-Type"] = "application/json"
	req.Body = "{bad"

	_, _, err := callBefore(t, JSONBody(), req)
	require.Error(t, err)

	he, ok := httperr.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Equal(t, "INVALID_JSON_BODY", he.Code)
	assert.Equal(t, "Invalid JSON in request body.", he.Message)
	assert.Nil(t, req.Payload)
}

func TestJSONBody_BadBase64(t *testing.T) {
	req := newRequest("POST", "/echo")
	req.Headers["Content-Type"] = "application/json"
	req.Body = "%%%"
	req.IsBase64Encoded = true

	_, _, err := callBefore(t, JSONBody(), req)
	he, ok := httperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "INVALID_JSON_BODY", he.Code)
}

func TestJSONBody_Skips(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"no body", "application/json", ""},
		{"text", "text/plain", "{bad"},
		{"no content type", "", `{"a":1}`},
		{"unparsable media type", "application/json; =", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest("POST", "/echo")
			if tt.contentType != "" {
				req.Headers["Content-Type"] = tt.contentType
			}
			req.Body = tt.body

			_, _, err := callBefore(t, JSONBody(), req)
			require.NoError(t, err)
			assert.Nil(t, req.Payload)
		})
	}
}

func TestIsJSON(t *testing.T) {
	assert.True(t, isJSON("application/json"))
	assert.True(t, isJSON("Application/JSON"))
	assert.True(t, isJSON("application/problem+json"))
	assert.False(t, isJSON("text/json+html"))
	assert.False(t, isJSON("application/xml"))
}
