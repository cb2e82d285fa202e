package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoke(t *testing.T, args []string, stdin string) (events.APIGatewayProxyResponse, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("RAWR_LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	t.Cleanup(func() { eventFile = "-" })

	var resp events.APIGatewayProxyResponse
	if err := rootCmd.Execute(); err != nil {
		return resp, err
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	return resp, nil
}

func TestInvoke_Routes(t *testing.T) {
	tests := []struct {
		name     string
		event    string
		status   int
		contains string
	}{
		{"hello", `{"httpMethod":"GET","path":"/hello","queryStringParameters":{"name":"rawr"}}`, 200, "hello, rawr"},
		{"echo", `{"httpMethod":"POST","path":"/echo","headers":{"Content-Type":"application/json"},"body":"{\"message\":\"hi\"}"}`, 200, `"message":"hi"`},
		{"echo missing field", `{"httpMethod":"POST","path":"/echo","headers":{"Content-Type":"application/json"},"body":"{}"}`, 400, "is required"},
		{"echo malformed", `{"httpMethod":"POST","path":"/echo","headers":{"Content-Type":"application/json"},"body":"{bad"}`, 400, "INVALID_JSON_BODY"},
		{"boom", `{"httpMethod":"GET","path":"/boom"}`, 500, "INTERNAL_SERVER_ERROR"},
		{"unknown", `{"httpMethod":"GET","path":"/nope"}`, 404, `"meta":{"route":"GET /nope"}`},
		{"health", `{"httpMethod":"GET","path":"/healthz"}`, 200, "server_time_unix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := invoke(t, []string{"invoke", "--event", "-"}, tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, resp.Body, tt.contains)
			assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
			assert.NotEmpty(t, resp.Headers["X-Request-Id"])
		})
	}
}

func TestInvoke_EventFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"httpMethod":"GET","path":"/hello"}`), 0o600))

	resp, err := invoke(t, []string{"invoke", "--event", path}, "")
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "MISS", resp.Headers["X-Cache"])
}

func TestInvoke_BadEvent(t *testing.T) {
	_, err := invoke(t, []string{"invoke"}, "not json")
	assert.ErrorContains(t, err, "failed to parse event")
}
