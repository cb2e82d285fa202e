package composer

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

// LambdaHandler is the handler shape expected by lambda.Start for API Gateway
// proxy integrations.
type LambdaHandler func(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Lambda adapts h to the aws-lambda-go handler shape. Every event gets a fresh
// Invocation whose RequestID is the Lambda request id when available. A
// successful invocation without a response yields ErrNilResponse.
func (h Handler) Lambda() LambdaHandler {
	return func(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		inv := NewInvocation(lambdaRequestID(ctx, ev))
		resp, err := h(ctx, NewRequest(ev), inv)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		if resp == nil {
			return events.APIGatewayProxyResponse{}, ErrNilResponse
		}
		return *resp, nil
	}
}

// lambdaRequestID prefers the runtime's request id and falls back to the one
// API Gateway put into the event.
func lambdaRequestID(ctx context.Context, ev events.APIGatewayProxyRequest) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return ev.RequestContext.RequestID
}
