package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/video-digest/errors"
	usecaseErrors "github.com/johnquangdev/video-digest/internal/usecase/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID prefers the id set by the RequestID middleware, then the inbound header
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return HandleSuccessWithStatus(logger, c, http.StatusOK, data)
}

// HandleSuccessWithStatus is HandleSuccess with an explicit status code
func HandleSuccessWithStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			log := logger.Error
			if appErr.HTTPCode < http.StatusInternalServerError {
				log = logger.Warn
			}
			log("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.String("app_code", appErr.Code.String()),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    int(appErr.Code),
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    int(errors.ErrorCode_INTERNAL),
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// toAppError maps usecase error kinds to AppError and records the failing stage
func toAppError(err error, filename string) errors.AppError {
	var appErr errors.AppError
	switch {
	case stdErrors.As(err, &appErr):
		return appErr
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		appErr = errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrNotFound):
		appErr = errors.ErrNotFound("Video")
		appErr.Raw = err
	case stdErrors.Is(err, usecaseErrors.ErrInProgress):
		appErr = errors.ErrProcessingInProgress(filename)
	case stdErrors.Is(err, usecaseErrors.ErrVideoOpen):
		appErr = errors.ErrVideoOpenFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrExtraction):
		appErr = errors.ErrAudioExtractionFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrTranscription):
		appErr = errors.ErrAITranscriptionFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrFrameSampling):
		appErr = errors.ErrFrameSamplingFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrSummarization):
		appErr = errors.ErrAISummaryFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrChat):
		appErr = errors.ErrAIChatFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrRegistry):
		appErr = errors.ErrRegistryFailed(err)
	default:
		appErr = errors.ErrInternal(err)
	}

	if stage, ok := usecaseErrors.StageOf(err); ok {
		appErr = appErr.WithDetail("stage", stage)
	}
	return appErr
}

// HTTPErrorHandler renders errors raised outside handlers (routing, body limit) in the same envelope
func HTTPErrorHandler(logger *zap.Logger, bodyLimit string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if werr := HandleError(logger, c, fromHTTPError(err, bodyLimit)); werr != nil && logger != nil {
			logger.Error("http.response.write_failed", zap.Error(werr))
		}
	}
}

func fromHTTPError(err error, bodyLimit string) error {
	var he *echo.HTTPError
	if !stdErrors.As(err, &he) {
		return err
	}

	switch he.Code {
	case http.StatusRequestEntityTooLarge:
		return errors.ErrPayloadTooLarge(bodyLimit)
	case http.StatusNotFound:
		return errors.ErrNotFound("Route")
	case http.StatusMethodNotAllowed:
		return errors.AppError{
			HTTPCode: http.StatusMethodNotAllowed,
			Code:     errors.ErrorCode_INVALID_ARGUMENT,
			Message:  "Method not allowed",
		}
	}
	if he.Code < http.StatusInternalServerError {
		return errors.AppError{
			Raw:      he,
			HTTPCode: he.Code,
			Code:     errors.ErrorCode_INVALID_ARGUMENT,
			Message:  fmt.Sprint(he.Message),
		}
	}
	return errors.ErrInternal(he)
}

// bindAndValidate binds the request into req and runs the registered validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}
