package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agridesk/farmbook/internal/domain/apperr"
)

// envelope is the single response shape used by every resource.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, envelope{Success: true, Data: data, Message: message})
}

// respondError maps the error kind to an HTTP status. Storage causes are
// logged server-side and never serialized to the client.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	kind := apperr.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindDuplicateKey:
		status = http.StatusConflict
	case apperr.KindInvalidFarmerReference:
		status = http.StatusUnprocessableEntity
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	} else {
		logger.Warn("request rejected", zap.String("kind", string(kind)), zap.Error(err))
	}

	c.JSON(status, envelope{
		Success: false,
		Error:   &errorBody{Code: string(kind), Message: apperr.MessageOf(err)},
	})
}
