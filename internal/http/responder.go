package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pharmabot/basket-service/internal/domain/dto"
	"github.com/pharmabot/basket-service/internal/i18n"
	"github.com/pharmabot/basket-service/internal/middleware"
)

// Validator is implemented by request DTOs that check their own fields.
type Validator interface {
	Validate() error
}

// BuildRequestAndValidate decodes the JSON body into T and runs its
// validation when T implements Validator.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	if v, ok := any(&req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

// ResponseBuilder writes the service's response envelopes for one request.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success writes data wrapped in the success envelope.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	b.c.JSON(statusCode, dto.SuccessResponse{
		Data:      data,
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now(),
	})
}

// SuccessOK writes a 200 success envelope.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated writes a 201 success envelope.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Error aborts the request with a localized error envelope. The message
// key is translated per the client's Accept-Language; err goes to the
// gin error list for the error handler middleware to log.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	if err != nil {
		_ = b.c.Error(err)
	}
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))
	b.c.AbortWithStatusJSON(statusCode,
		dto.NewError(dto.ErrCodeFromStatus(statusCode), message).
			WithRequestID(middleware.GetRequestID(b.c)))
}
