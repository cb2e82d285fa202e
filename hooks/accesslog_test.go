package hooks

import (
	"errors"
	"testing"

	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessLog(t *testing.T) {
	log, logs := observedLogger()

	ok := composer.New().Finally(AccessLog(log)).Wrap(okHandler("hi"))
	_, err := ok(t.Context(), newRequest("GET", "/hello"), composer.NewInvocation("r1"))
	require.NoError(t, err)

	failing := composer.New().Finally(AccessLog(log)).Wrap(failHandler(errors.New("x")))
	_, err = failing(t.Context(), newRequest("POST", "/echo"), composer.NewInvocation("r2"))
	require.Error(t, err)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "r1", first["request_id"])
	assert.Equal(t, "/hello", first["path"])
	assert.EqualValues(t, 200, first["status"])
	assert.NotContains(t, first, "failed")

	second := entries[1].ContextMap()
	assert.Equal(t, true, second["failed"])
	assert.NotContains(t, second, "status")
}
