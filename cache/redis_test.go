package cache

import (
	"errors"
	"io"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type replyErr string

func (e replyErr) Error() string { return string(e) }
func (replyErr) RedisError()     {}

func TestDefaultRetryClassifier(t *testing.T) {
	retryable := DefaultRetry().Retryable

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"eof", io.EOF, true},
		{"loading", replyErr("LOADING Redis is loading the dataset in memory"), true},
		{"readonly wrapped", errors.Join(errors.New("set"), replyErr("READONLY You can't write against a read only replica.")), true},
		{"miss", redis.Nil, false},
		{"wrong type", replyErr("WRONGTYPE Operation against a key holding the wrong kind of value"), false},
		{"plain", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retryable(tt.err))
		})
	}
}
