package handlers

// ErrorResponse is the body of every 500 response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of a 401 response
type MessageResponse struct {
	Message string `json:"message"`
}

const (
	unauthorizedMessage = "Unauthorized"
	serverErrorPrefix   = "Unexpected server error: "
)
