package auth_test

import (
	"testing"

	"github.com/Keksclan/goRawrLambda/auth"
	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/aws/aws-lambda-go/events"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer  spaced ", "spaced"},
		{"Basic dXNlcjpwdw==", ""},
		{"", ""},
		{"Bearer", ""},
	}
	for _, tt := range tests {
		req := composer.NewRequest(events.APIGatewayProxyRequest{
			Headers: map[string]string{"authorization": tt.header},
		})
		if got := auth.BearerToken(req); got != tt.want {
			t.Fatalf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
