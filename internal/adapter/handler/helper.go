package handler

import (
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/errors"
	uerrors "github.com/johnquangdev/meeting-notes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-notes/pkg/llm"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Info    string      `json:"info,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// HandleSuccess writes a standardized success response
func HandleSuccess(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
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

// HandleError centralizes error handling and logging
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	appErr := toAppError(c, err)

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		)
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	body := errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
	}

	return c.JSON(appErr.HTTPCode, body)
}

// toAppError normalizes service-level errors into AppError so every
// handler maps failures to HTTP the same way
func toAppError(c echo.Context, err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	id := c.Param("id")

	switch {
	case stdErrors.Is(err, uerrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound(id)
	case stdErrors.Is(err, uerrors.ErrMeetingNoContent):
		return errors.ErrMeetingNoContent(id)
	case stdErrors.Is(err, uerrors.ErrMeetingProcessing):
		return errors.ErrMeetingInvalidState(id, "processing", "draft")
	case stdErrors.Is(err, uerrors.ErrActionItemNotFound):
		return errors.ErrActionItemNotFound(id)
	case stdErrors.Is(err, uerrors.ErrNotFound):
		return errors.ErrNotFound("transcript")
	case stdErrors.Is(err, llm.ErrRateLimit):
		return errors.ErrAIQuotaExceeded()
	case stdErrors.Is(err, uerrors.ErrAIResponseInvalid):
		return errors.ErrAIResponseInvalid(err)
	case stdErrors.Is(err, uerrors.ErrSummaryGeneration):
		return errors.ErrSummaryFailed(err)
	case stdErrors.Is(err, uerrors.ErrActionItemExtraction):
		return errors.ErrExtractionFailed(err)
	case stdErrors.Is(err, uerrors.ErrInvalidActionItemStatus),
		stdErrors.Is(err, uerrors.ErrInvalidPriority),
		stdErrors.Is(err, uerrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, uerrors.ErrUnauthorized):
		return errors.ErrUnauthenticated()
	default:
		return errors.ErrInternal(err)
	}
}

// bindAndValidate decodes the request payload and runs validation
func bindAndValidate(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(v); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}

// parseIDParam reads a UUID path parameter
func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("invalid " + name + " parameter")
	}
	return id, nil
}

// normalizePage applies list pagination defaults
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
