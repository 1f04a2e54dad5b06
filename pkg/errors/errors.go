// Package errors provides unified application error handling
// errors 包提供统一的应用错误处理
package errors

import (
	"fmt"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/middleware"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"

	"github.com/gin-gonic/gin"
)

// AppError 应用错误，携带错误码、消息与追踪信息
type AppError struct {
	Code      int      `json:"code"`
	Message   string   `json:"message"`
	Details   []string `json:"details,omitempty"`
	TraceID   string   `json:"traceId,omitempty"`
	Cause     error    `json:"-"`
	Timestamp int64    `json:"timestamp"`

	appCode *code.Code
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("code: %d, message: %s, cause: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("code: %d, message: %s", e.Code, e.Message)
}

// Unwrap supports errors.Is / errors.As chains
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError 基于错误码创建应用错误
func NewAppError(c *code.Code, cause error) *AppError {
	e := &AppError{
		Code:      c.Code(),
		Message:   c.Msg(),
		Details:   c.Details(),
		Cause:     cause,
		Timestamp: time.Now().Unix(),
		appCode:   c,
	}
	if cause != nil && len(e.Details) == 0 {
		e.Details = []string{cause.Error()}
	}
	return e
}

// WithTraceID 附加追踪 ID
func (e *AppError) WithTraceID(traceID string) *AppError {
	e.TraceID = traceID
	return e
}

// ErrorResponse 将错误写入 HTTP 响应，未知错误归一为服务器内部错误
func ErrorResponse(c *gin.Context, err error) {
	traceID := middleware.GetTraceIDFromGin(c)

	switch e := err.(type) {
	case *AppError:
		if e.TraceID == "" {
			e.TraceID = traceID
		}
		writeError(c, e)
	case *code.Code:
		writeError(c, NewAppError(e, nil).WithTraceID(traceID))
	default:
		appErr := NewAppError(code.ErrorServerInternal, err).WithTraceID(traceID)
		writeError(c, appErr)
	}
}

func writeError(c *gin.Context, e *AppError) {
	status := 200
	if e.appCode != nil {
		status = e.appCode.StatusCode()
	}
	c.JSON(status, gin.H{
		"code":      e.Code,
		"status":    "error",
		"message":   e.Message,
		"details":   e.Details,
		"traceId":   e.TraceID,
		"timestamp": e.Timestamp,
	})
}
