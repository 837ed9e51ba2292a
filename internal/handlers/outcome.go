package handlers

import (
	"net/http"

	"causes-api/internal/models"
)

type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeUnauthorized
	outcomeFailure
)

// outcome is the result of one request before it is encoded
type outcome struct {
	kind   outcomeKind
	causes []models.Cause
	err    error
}

func success(causes []models.Cause) outcome {
	if causes == nil {
		causes = []models.Cause{}
	}
	return outcome{kind: outcomeSuccess, causes: causes}
}

func unauthorized() outcome {
	return outcome{kind: outcomeUnauthorized}
}

func failure(err error) outcome {
	return outcome{kind: outcomeFailure, err: err}
}

// fallbackBody is sent if even the error body cannot be encoded
const fallbackBody = `{"error":"Unexpected server error"}`

// encode turns the outcome into a status code and JSON body. A success whose
// payload fails to encode is downgraded to a failure.
func (o outcome) encode(marshal func(v interface{}) ([]byte, error)) (int, []byte) {
	var (
		status int
		body   interface{}
	)

	switch o.kind {
	case outcomeUnauthorized:
		status, body = http.StatusUnauthorized, MessageResponse{Message: unauthorizedMessage}
	case outcomeFailure:
		status, body = http.StatusInternalServerError, ErrorResponse{Error: serverErrorPrefix + o.err.Error()}
	default:
		status, body = http.StatusOK, o.causes
	}

	data, err := marshal(body)
	if err != nil {
		if o.kind == outcomeSuccess {
			return failure(err).encode(marshal)
		}
		return http.StatusInternalServerError, []byte(fallbackBody)
	}

	return status, data
}
