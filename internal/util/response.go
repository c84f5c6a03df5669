package util

import (
	"athena_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// RejectOrFail 把业务校验错误映射为对应的 HTTP 状态码，
// 其余错误按基础设施故障处理并记录日志
func RejectOrFail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrStageMustStartAtOne),
		errors.Is(err, ErrPriorStageNotApproved),
		errors.Is(err, ErrSemesterRegression),
		errors.Is(err, ErrNotInEducationOrdinance),
		errors.Is(err, ErrLearnAimCompleted),
		errors.Is(err, ErrNotOwner),
		errors.Is(err, ErrPermissionDenied):
		Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrStageAlreadyChecked),
		errors.Is(err, ErrAlreadyApproved):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrNoOrdinance),
		errors.Is(err, ErrUnsupportedFileType):
		Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrLearnAimNotFound),
		errors.Is(err, ErrCompetenceNotFound),
		errors.Is(err, ErrCheckNotFound):
		Error(c, http.StatusNotFound, err.Error())
	default:
		LogInternalError(c, err)
	}
}
