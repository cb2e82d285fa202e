package hooks

import (
	"testing"

	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID_Sources(t *testing.T) {
	t.Run("header wins", func(t *testing.T) {
		req := newRequest("GET", "/")
		req.Headers["x-request-id"] = "from-header"
		req.RequestContext.RequestID = "from-gateway"
		inv := composer.NewInvocation("from-invocation")

		_, err := RequestID()(t.Context(), req, inv, nil)
		require.NoError(t, err)
		assert.Equal(t, "from-header", inv.RequestID)
	})

	t.Run("gateway context", func(t *testing.T) {
		req := newRequest("GET", "/")
		req.RequestContext.RequestID = "from-gateway"
		inv := composer.NewInvocation("from-invocation")

		_, _ = RequestID()(t.Context(), req, inv, nil)
		assert.Equal(t, "from-gateway", inv.RequestID)
	})

	t.Run("invocation kept", func(t *testing.T) {
		inv := composer.NewInvocation("from-invocation")
		_, _ = RequestID()(t.Context(), newRequest("GET", "/"), inv, nil)
		assert.Equal(t, "from-invocation", inv.RequestID)
	})

	t.Run("generated", func(t *testing.T) {
		inv := composer.NewInvocation("")
		_, _ = RequestID()(t.Context(), newRequest("GET", "/"), inv, nil)
		_, err := uuid.Parse(inv.RequestID)
		assert.NoError(t, err)
	})
}

func TestRequestIDHeader(t *testing.T) {
	h := composer.New().
		Before(RequestID()).
		Finally(RequestIDHeader()).
		Wrap(okHandler("hi"))

	req := newRequest("GET", "/")
	req.Headers["X-Request-Id"] = "abc"

	resp, err := h(t.Context(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Headers[RequestIDHeaderName])
	assert.Equal(t, "text/plain", resp.Headers["Content-Type"])
}

func TestRequestIDHeader_NoResponse(t *testing.T) {
	resp, err := RequestIDHeader()(t.Context(), newRequest("GET", "/"), composer.NewInvocation("x"), nil)
	require.NoError(t, err)
	assert.Nil(t, resp)
}
