package errors

import (
	"errors"
	"fmt"
)

// ErrorCode 表示错误码类型
type ErrorCode int

// 定义应用程序的错误码
const (
	// 通用错误
	ErrUnknown ErrorCode = iota + 1000
	ErrInvalidParameter
	ErrNotImplemented

	// 帧层错误
	ErrFrameMalformed
	ErrFrameChecksumMismatch

	// 消息头错误
	ErrHeaderTruncated

	// 消息体解码错误
	ErrDecodeTruncated
	ErrDecodeUnsupportedType
	ErrUnknownMessageID

	// 消息体编码错误
	ErrEncodeMissingField

	// 校验错误
	ErrValidationMissingField
	ErrValidationTypeMismatch
	ErrValidationRange
	ErrValidationEnum
	ErrValidationPattern

	// 设备与连接相关错误
	ErrDeviceNotFound
	ErrDeviceNotConnected
	ErrCommandSerialization

	// Redis缓存相关错误
	ErrRedisConnectionFailed
	ErrRedisOperationFailed

	// 消息总线相关错误
	ErrUplinkPublishFailed
)

// AppError 应用程序自定义错误类型
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error 实现error接口
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持Go 1.13+的错误包装
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New 创建一个新的AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 创建一个带格式化消息的AppError
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装一个已有的错误
func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsErrCode 检查错误是否为指定的错误码（沿错误链查找）
func IsErrCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
