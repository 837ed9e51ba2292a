package lambda

import (
	"github.com/aws/aws-lambda-go/events"

	"causes-api/internal/auth"
)

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`
	RequestID   string            `json:"request_id"`
	// Subject is the authenticated caller, empty when none was resolved
	Subject string `json:"subject,omitempty"`
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// FromAPIGateway converts a REST API proxy event, resolving the subject from
// the authorizer claims.
func FromAPIGateway(event events.APIGatewayProxyRequest) *Request {
	subject, _ := auth.SubjectFromAuthorizer(event.RequestContext.Authorizer)

	return &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        []byte(event.Body),
		PathParams:  event.PathParameters,
		RequestID:   event.RequestContext.RequestID,
		Subject:     subject,
	}
}

// ToAPIGateway converts the response back into a proxy response
func (r *Response) ToAPIGateway() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Body:       string(r.Body),
	}
}
