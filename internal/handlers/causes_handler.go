package handlers

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"causes-api/internal/auth"
	"causes-api/internal/middleware"
	"causes-api/internal/services"
	"causes-api/pkg/lambda"
)

const contentTypeJSON = "application/json"

// CausesHandler serves the full list of causes to authenticated callers
type CausesHandler struct {
	causeService services.CauseService
	logger       *logrus.Logger
	marshal      func(v interface{}) ([]byte, error)
}

// NewCausesHandler creates a new causes handler
func NewCausesHandler(causeService services.CauseService, logger *logrus.Logger) *CausesHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &CausesHandler{
		causeService: causeService,
		logger:       logger,
		marshal:      json.Marshal,
	}
}

// HandleList serves a serverless request
func (h *CausesHandler) HandleList(ctx context.Context, req *lambda.Request) *lambda.Response {
	status, body := h.list(ctx, req.Subject, req.RequestID).encode(h.marshal)

	return &lambda.Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": contentTypeJSON},
		Body:       body,
	}
}

// @Summary List causes
// @Description Get every boycott cause
// @Tags causes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Cause
// @Failure 401 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /causes [get]
func (h *CausesHandler) ListCauses(c *gin.Context) {
	status, body := h.list(c.Request.Context(), c.GetString(auth.SubjectKey), c.GetString(middleware.RequestIDKey)).encode(h.marshal)

	c.Data(status, contentTypeJSON, body)
}

// list resolves the request to an outcome. The store is only consulted once a
// subject is known.
func (h *CausesHandler) list(ctx context.Context, subject, requestID string) outcome {
	if subject == "" {
		h.logger.WithField("request_id", requestID).Debug("Rejected request without subject")
		return unauthorized()
	}

	fields := logrus.Fields{
		"sub":        subject,
		"request_id": requestID,
	}
	h.logger.WithFields(fields).Debug("user is authorized")

	causes, err := h.causeService.ListCauses(ctx)
	if err != nil {
		h.logger.WithFields(fields).WithError(err).Error("Failed to list causes")
		return failure(err)
	}

	return success(causes)
}

// ServerErrorResponse builds the 500 response for failures that happen before
// a handler exists, such as a container that could not be built.
func ServerErrorResponse(err error) *lambda.Response {
	status, body := failure(err).encode(json.Marshal)

	return &lambda.Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": contentTypeJSON},
		Body:       body,
	}
}
