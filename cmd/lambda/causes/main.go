package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"causes-api/internal/handlers"
	"causes-api/pkg/lambda"
	"causes-api/pkg/server"
)

// containerSource is satisfied by *server.ConnectionManager
type containerSource interface {
	GetContainer(ctx context.Context) (*server.Container, error)
}

func newHandler(source containerSource) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		container, err := source.GetContainer(ctx)
		if err != nil {
			return handlers.ServerErrorResponse(err).ToAPIGateway(), nil
		}

		resp := container.CausesHandler.HandleList(ctx, lambda.FromAPIGateway(event))
		return resp.ToAPIGateway(), nil
	}
}

func main() {
	awslambda.Start(newHandler(server.GetConnectionManager()))
}
