// Package ping provides the payload behind the built-in health route. A
// Handler turns an optional message into a response carrying the server
// time; the hooks package serves it as JSON.
package ping

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// PingRequest is the input of a health check.
type PingRequest struct {
	Message string `json:"message"`
}

// PingResponse is the body returned by a health check.
type PingResponse struct {
	Message        string `json:"message"`
	ServerTimeUnix int64  `json:"server_time_unix"`
}

// Handler answers health checks.
type Handler interface {
	Ping(ctx context.Context, req *PingRequest) (*PingResponse, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, req *PingRequest) (*PingResponse, error)

// Ping calls f.
func (f HandlerFunc) Ping(ctx context.Context, req *PingRequest) (*PingResponse, error) {
	return f(ctx, req)
}

// DefaultMessage is echoed when the request carries no message.
const DefaultMessage = "ok"

// DefaultHandler returns a Handler that echoes the request message and
// attaches the current server time.
func DefaultHandler() Handler { return defaultHandler{now: time.Now} }

type defaultHandler struct {
	now func() time.Time
}

func (h defaultHandler) Ping(_ context.Context, req *PingRequest) (*PingResponse, error) {
	return &PingResponse{
		Message:        messageOf(req),
		ServerTimeUnix: h.now().Unix(),
	}, nil
}

var funMessages = []string{
	"Rawr! Still warm.",
	"Cold start? Never heard of it.",
	"Hooks composed, claws out!",
	"Lambda says hi!",
	"All phases green!",
}

// FunHandler returns a Handler that occasionally (1 in 5 chance) replaces
// the echoed message with a fun response chosen from an internal list.
//
// src may be nil; in that case a time-seeded source is used.
func FunHandler(src rand.Source) Handler {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &funHandler{rng: rand.New(src), now: time.Now}
}

type funHandler struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func (h *funHandler) Ping(_ context.Context, req *PingRequest) (*PingResponse, error) {
	msg := messageOf(req)

	h.mu.Lock()
	if h.rng.Intn(5) == 0 {
		msg = funMessages[h.rng.Intn(len(funMessages))]
	}
	h.mu.Unlock()

	return &PingResponse{
		Message:        msg,
		ServerTimeUnix: h.now().Unix(),
	}, nil
}

func messageOf(req *PingRequest) string {
	if req == nil || req.Message == "" {
		return DefaultMessage
	}
	return req.Message
}
