package httpclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError 表示后端以非 2xx 状态返回的业务错误。
// CloudStore 后端的错误体为 {"code":400,"message":"...","data":{"message":"..."}}，
// data.message 优先于顶层 message。
type APIError struct {
	Status  int
	Code    int
	Message string
	Field   string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return fmt.Sprintf("api: [%d] %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: http 状态码 %d", e.Status)
}

// Detail 返回后端给出的可读信息，无法解析时为空。
func (e *APIError) Detail() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// NetworkError 包装底层网络错误，表示未收到任何响应。
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("网络错误: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError 表示响应解码失败。
type DecodeError struct {
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("解码失败(status=%d): %v", e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// apiErrorBody 兼容 {data:{message}} 与顶层 {message} 两种错误形态。
type apiErrorBody struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Data    struct {
		Message string `json:"message,omitempty"`
	} `json:"data,omitempty"`
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}
	var body apiErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		// 错误体不可解析时只保留 HTTP 状态，由上层选择兜底文案。
		return apiErr
	}
	apiErr.Code = body.Code
	if body.Data.Message != "" {
		apiErr.Message = body.Data.Message
	} else {
		apiErr.Message = body.Message
	}
	return apiErr
}
