package hooks

import (
	"context"
	"time"

	"github.com/Keksclan/goRawrLambda/composer"
	"go.uber.org/zap"
)

// AccessLog returns a finally hook that writes one info line per invocation.
func AccessLog(log *zap.Logger) composer.Hook {
	if log == nil {
		log = zap.NewNop()
	}
	return func(_ context.Context, req *composer.Request, inv *composer.Invocation, resp *composer.Response) (*composer.Response, error) {
		fields := []zap.Field{
			zap.String("request_id", inv.RequestID),
			zap.String("method", req.HTTPMethod),
			zap.String("path", req.Path),
			zap.Duration("duration", time.Since(inv.StartedAt)),
		}
		if resp != nil {
			fields = append(fields, zap.Int("status", resp.StatusCode))
		}
		if inv.Failed() {
			fields = append(fields, zap.Bool("failed", true))
		}
		log.Info("request", fields...)
		return nil, nil
	}
}
