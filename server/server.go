// Package server runs a composed handler behind a plain net/http server by
// translating each HTTP request into an API Gateway proxy event. It is meant
// for local development and integration tests, not for production traffic.
package server

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrBodyTooLarge is returned by Event when the body exceeds the limit.
var ErrBodyTooLarge = errors.New("server: request body too large")

// gatewayError mirrors the body API Gateway sends when the integration fails.
const gatewayError = `{"message":"Internal server error"}`

// Server adapts a composer.Handler to http.Handler.
type Server struct {
	handler composer.Handler
	cfg     config
}

// New creates a Server for h.
func New(h composer.Handler, opts ...Option) *Server {
	if h == nil {
		panic("server: nil handler")
	}
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Server{handler: h, cfg: cfg}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if s.cfg.metrics != nil && r.URL.Path == s.cfg.metricsPath {
		s.cfg.metrics.ServeHTTP(w, r)
		return
	}

	ev, err := Event(r, s.cfg.maxBodyBytes)
	if err != nil {
		if errors.Is(err, ErrBodyTooLarge) {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ev.RequestContext.Stage = s.cfg.stage

	inv := composer.NewInvocation(ev.RequestContext.RequestID)
	resp, err := s.handler(r.Context(), composer.NewRequest(ev), inv)
	if err == nil && resp == nil {
		err = composer.ErrNilResponse
	}
	if err != nil {
		s.cfg.logger.Error("handler failed",
			zap.String("request_id", inv.RequestID),
			zap.String("method", ev.HTTPMethod),
			zap.String("path", ev.Path),
			zap.Error(err),
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, gatewayError)
		return
	}

	if err := WriteResponse(w, resp); err != nil {
		s.cfg.logger.Warn("write response", zap.String("request_id", inv.RequestID), zap.Error(err))
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	return s.Serve(ctx, lis)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.logger.Info("listening", zap.String("addr", lis.Addr().String()))
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Event converts r into an API Gateway proxy event. Bodies that are not
// valid UTF-8 are base64 encoded. The source IP is taken from RemoteAddr.
func Event(r *http.Request, maxBodyBytes int64) (events.APIGatewayProxyRequest, error) {
	var body []byte
	if r.Body != nil {
		b, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
		if err != nil {
			return events.APIGatewayProxyRequest{}, fmt.Errorf("server: read body: %w", err)
		}
		if int64(len(b)) > maxBodyBytes {
			return events.APIGatewayProxyRequest{}, ErrBodyTooLarge
		}
		body = b
	}

	ev := events.APIGatewayProxyRequest{
		Resource:   r.URL.Path,
		Path:       r.URL.Path,
		HTTPMethod: r.Method,
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:        uuid.NewString(),
			HTTPMethod:       r.Method,
			Path:             r.URL.Path,
			Protocol:         r.Proto,
			RequestTimeEpoch: time.Now().UnixMilli(),
			Identity: events.APIGatewayRequestIdentity{
				SourceIP:  remoteIP(r.RemoteAddr),
				UserAgent: r.UserAgent(),
			},
		},
	}

	if len(r.Header) > 0 {
		ev.Headers = make(map[string]string, len(r.Header))
		ev.MultiValueHeaders = make(map[string][]string, len(r.Header))
		for k, vs := range r.Header {
			ev.Headers[k] = vs[0]
			ev.MultiValueHeaders[k] = append([]string(nil), vs...)
		}
	}
	if r.Host != "" {
		if ev.Headers == nil {
			ev.Headers = map[string]string{}
			ev.MultiValueHeaders = map[string][]string{}
		}
		ev.Headers["Host"] = r.Host
		ev.MultiValueHeaders["Host"] = []string{r.Host}
	}

	if q := r.URL.Query(); len(q) > 0 {
		ev.QueryStringParameters = make(map[string]string, len(q))
		ev.MultiValueQueryStringParameters = make(map[string][]string, len(q))
		for k, vs := range q {
			ev.QueryStringParameters[k] = vs[0]
			ev.MultiValueQueryStringParameters[k] = vs
		}
	}

	if utf8.Valid(body) {
		ev.Body = string(body)
	} else {
		ev.Body = base64.StdEncoding.EncodeToString(body)
		ev.IsBase64Encoded = true
	}
	return ev, nil
}

// WriteResponse writes resp to w. A zero status code is written as 200.
func WriteResponse(w http.ResponseWriter, resp *composer.Response) error {
	body := []byte(resp.Body)
	if resp.IsBase64Encoded {
		b, err := base64.StdEncoding.DecodeString(resp.Body)
		if err != nil {
			http.Error(w, gatewayError, http.StatusBadGateway)
			return fmt.Errorf("server: decode body: %w", err)
		}
		body = b
	}

	h := w.Header()
	for k, vs := range resp.MultiValueHeaders {
		for _, v := range vs {
			h.Add(k, v)
		}
	}
	for k, v := range resp.Headers {
		h.Set(k, v)
	}

	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, err := w.Write(body)
	return err
}

func remoteIP(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
