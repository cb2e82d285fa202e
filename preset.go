package gorawrlambda

import (
	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/Keksclan/goRawrLambda/hooks"
	"go.uber.org/zap"
)

// HTTPLambda is the classic preset for API Gateway handlers: JSON bodies are
// decoded before the handler, failures are rendered as JSON by the error
// handler, and open CORS headers are added to every response. Unrecognized
// failures are logged through a production zap logger writing JSON to
// stderr; pass WithLogger to override.
//
// Extra options are applied after the preset. HTTPLambda panics if an option
// fails to initialise, as a misconfigured Lambda cannot serve anyway.
func HTTPLambda(h composer.Handler, opts ...Option) composer.LambdaHandler {
	all := append([]Option{
		WithLogger(presetLogger()),
		WithJSONBody(),
		WithErrorHandler(),
		WithCORS(hooks.DefaultCORSConfig),
	}, opts...)

	app, err := New(all...)
	if err != nil {
		panic(err)
	}
	return app.Lambda(h)
}

// presetLogger supplies the logger HTTPLambda starts from.
var presetLogger = productionLogger

func productionLogger() *zap.Logger {
	log, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
