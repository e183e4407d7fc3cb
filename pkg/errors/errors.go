package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrCodeToolNotFound     ErrCode = "TOOL_NOT_FOUND"
	ErrCodeToolFailed       ErrCode = "TOOL_FAILED"
	ErrCodeModelUnknown     ErrCode = "MODEL_UNKNOWN"
	ErrCodePrecisionInvalid ErrCode = "PRECISION_INVALID"
	ErrCodeDeviceUnknown    ErrCode = "DEVICE_UNKNOWN"
	ErrCodeIRUnknown        ErrCode = "IR_UNKNOWN"
	ErrCodeOutputInvalid    ErrCode = "OUTPUT_INVALID"
	ErrCodeConfigInvalid    ErrCode = "CONFIG_INVALID"
	ErrCodeInvalidParameter ErrCode = "INVALID_PARAMETER"
	ErrCodeUnauthorized     ErrCode = "UNAUTHORIZED"
	ErrCodeUnsupported      ErrCode = "UNSUPPORTED"
	ErrCodeUnknow           ErrCode = "UNKNOWN"
	ErrCodeInternal         ErrCode = "INTERNAL"
)

type ErrCode string

type ErrorInfo struct {
	HttpStatus int     `json:"-"`
	Code       ErrCode `json:"code"`
	Message    string  `json:"message"`
	Detail     string  `json:"detail"`
}

func (e ErrorInfo) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func IsErrCode(err error, code ErrCode) bool {
	if err == nil {
		return false
	}
	info := ErrorInfo{}
	if errors.As(err, &info) {
		return info.Code == code
	}
	return false
}

func NewToolNotFoundError(tool string) ErrorInfo {
	return ErrorInfo{
		HttpStatus: http.StatusNotImplemented, Code: ErrCodeToolNotFound,
		Message: fmt.Sprintf("tool %s not found in PATH", tool),
	}
}

func NewToolFailedError(tool string, exitcode int, stderr string) ErrorInfo {
	return ErrorInfo{
		HttpStatus: http.StatusBadGateway, Code: ErrCodeToolFailed,
		Message: fmt.Sprintf("%s exited with status %d", tool, exitcode),
		Detail:  stderr,
	}
}

func NewModelUnknownError(name string) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusNotFound, Code: ErrCodeModelUnknown, Message: fmt.Sprintf("model: %s not found", name)}
}

func NewPrecisionInvalidError(precision string) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusBadRequest, Code: ErrCodePrecisionInvalid, Message: fmt.Sprintf("precision invalid: %s", precision)}
}

func NewDeviceUnknownError(device string) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusNotFound, Code: ErrCodeDeviceUnknown, Message: fmt.Sprintf("device: %s not available", device)}
}

func NewIRUnknownError(model string, precision string) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusNotFound, Code: ErrCodeIRUnknown, Message: fmt.Sprintf("no converted IR for %s at %s", model, precision)}
}

func NewOutputInvalidError(tool string, err error) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusBadGateway, Code: ErrCodeOutputInvalid, Message: fmt.Sprintf("unparseable %s output: %v", tool, err)}
}

func NewConfigInvalidError(msg string) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusBadRequest, Code: ErrCodeConfigInvalid, Message: msg}
}

func NewParameterInvalidError(msg string) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusBadRequest, Code: ErrCodeInvalidParameter, Message: msg}
}

func NewUnauthorizedError(msg string) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusUnauthorized, Code: ErrCodeUnauthorized, Message: msg}
}

func NewUnsupportedError(msg string) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusNotImplemented, Code: ErrCodeUnsupported, Message: msg}
}

func NewInternalError(err error) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusInternalServerError, Code: ErrCodeInternal, Message: err.Error()}
}
