// Package middleware holds the gin middleware of the API.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wasp/youtube-channel-api/internal/apperror"
	"github.com/wasp/youtube-channel-api/internal/db"
	"github.com/wasp/youtube-channel-api/internal/metrics"
	"github.com/wasp/youtube-channel-api/internal/models"
	"github.com/wasp/youtube-channel-api/internal/validation"
	"github.com/wasp/youtube-channel-api/pkg/logger"
)

const (
	supportMessageFormat = "Provide the Error Id: %s to the support team for further analysis."
	internalMessage      = "An unexpected error occurred."
	kindInvalid          = "invalid"
	kindUnauthorized     = "unauthorized"
)

// ErrNoRoute is attached by handlers when a path does not address a resource,
// for example a malformed identifier.
var ErrNoRoute = errors.New("the requested resource could not be found")

// ErrUnauthorized is attached when a request lacks a valid API key.
var ErrUnauthorized = errors.New("a valid API key is required")

// ErrorTranslator turns errors attached to the context, and panics, into an
// ErrorResult response. It is the only place that maps failures to status codes.
func ErrorTranslator(m *metrics.Metrics) gin.HandlerFunc {
	log := logger.Named("errors")

	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				_ = c.Error(fmt.Errorf("panic: %v", r))
				c.Abort()
				translate(c, log, m)
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			translate(c, log, m)
		}
	}
}

func translate(c *gin.Context, log *zap.Logger, m *metrics.Metrics) {
	last := c.Errors.Last()
	status, kind := classify(last.Err)

	errorID := uuid.NewString()
	result := models.ErrorResult{
		Messages:       messages(c.Errors, status),
		Source:         c.HandlerName(),
		Exception:      strings.TrimSpace(last.Error()),
		ErrorID:        errorID,
		SupportMessage: fmt.Sprintf(supportMessageFormat, errorID),
		StatusCode:     status,
	}
	if status == http.StatusInternalServerError {
		result.Exception = internalMessage
	}

	fields := []zap.Field{
		zap.String("errorId", errorID),
		zap.String("kind", kind),
		zap.Int("status", status),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Strings("errors", c.Errors.Errors()),
	}
	if constraint := db.ConstraintOf(last.Err); constraint != "" {
		fields = append(fields, zap.String("constraint", constraint))
	}
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", fields...)
	} else {
		log.Info("Request rejected", fields...)
	}

	if m != nil {
		m.ObserveError(kind)
	}

	if c.Writer.Written() {
		log.Warn("Can't write error response, response has already started",
			zap.String("errorId", errorID),
		)
		return
	}

	c.AbortWithStatusJSON(status, result)
}

func classify(err error) (int, string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, kindInvalid
	case errors.Is(err, ErrNoRoute):
		return http.StatusNotFound, apperror.KindNotFound.String()
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, kindUnauthorized
	}

	switch apperror.KindOf(err) {
	case apperror.KindAlreadyExists:
		return http.StatusBadRequest, apperror.KindAlreadyExists.String()
	case apperror.KindNotFound:
		return http.StatusNotFound, apperror.KindNotFound.String()
	}

	if db.IsNotFound(err) {
		return http.StatusNotFound, apperror.KindNotFound.String()
	}

	return http.StatusInternalServerError, apperror.KindInternal.String()
}

// messages lists what the caller may see. Internal details stay in the log.
func messages(errs []*gin.Error, status int) []string {
	if status == http.StatusInternalServerError {
		return []string{internalMessage}
	}

	out := make([]string, 0, len(errs))
	for _, e := range errs {
		var verr *validation.Error
		if errors.As(e.Err, &verr) {
			out = append(out, verr.Messages...)
			continue
		}
		out = append(out, e.Error())
	}
	return out
}
