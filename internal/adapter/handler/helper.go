package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/voice-transcriber/errors"
	"github.com/johnquangdev/voice-transcriber/internal/adapter/dto/transcription"
	"github.com/johnquangdev/voice-transcriber/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/voice-transcriber/internal/usecase/errors"
	"github.com/johnquangdev/voice-transcriber/pkg/validator"
)

// getRequestID reads the request id set by the RequestID middleware
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a JSON body with status 200 and logs the response
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}
	return c.JSON(http.StatusOK, data)
}

// HandleError maps err to an AppError, logs it and writes the error body
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := toAppError(c, err)

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", appErr.HTTPCode),
			zap.Stringer("app_code", appErr.Code),
			zap.Error(err),
		}
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Warn("http.response.error", fields...)
		}
	}

	return c.JSON(appErr.HTTPCode, errorBody(appErr))
}

// errorBody renders validation failures as {"errors": [...]} and everything
// else as {"error": "..."}; server errors carry the raw underlying message.
func errorBody(appErr errors.AppError) transcription.ErrorResponse {
	body := transcription.ErrorResponse{
		Code:    appErr.Code.String(),
		Details: appErr.Details,
	}
	if len(appErr.Errors) > 0 {
		body.Errors = appErr.Errors
		return body
	}
	if appErr.HTTPCode >= http.StatusInternalServerError && appErr.Raw != nil {
		body.Error = appErr.Raw.Error()
		return body
	}
	body.Error = appErr.Message
	return body
}

func toAppError(c echo.Context, err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var httpErr *echo.HTTPError
	if stdErrors.As(err, &httpErr) {
		return errors.AppError{
			Raw:      err,
			HTTPCode: httpErr.Code,
			Code:     errors.ErrorCode_INVALID_ARGUMENT,
			Message:  http.StatusText(httpErr.Code),
		}
	}

	switch {
	case stdErrors.Is(err, entities.ErrTranscriptionNotFound):
		return errors.ErrTranscriptionNotFound(c.Param("id"))
	case stdErrors.Is(err, entities.ErrInvalidTranscription):
		return errors.ErrValidationFailed(validator.Messages(err))
	case stdErrors.Is(err, usecaseErrors.ErrEmptyAudio):
		return errors.ErrAudioMissing()
	case stdErrors.Is(err, usecaseErrors.ErrAudioNotArchived):
		return errors.ErrNotFound("Audio")
	case stdErrors.Is(err, usecaseErrors.ErrAudioStorage):
		return errors.ErrStorageFailed("presign", err)
	case stdErrors.Is(err, usecaseErrors.ErrSummaryFailed):
		return errors.ErrAISummaryFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrTranscriptionFailed):
		return errors.ErrAITranscriptionFailed(err)
	default:
		return errors.ErrInternal(err)
	}
}
