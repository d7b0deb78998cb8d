package cloudstore

import (
	"errors"

	"github.com/dnslin/cloudstore-desktop/core/httpclient"
)

// 各操作的兜底文案。后端给出可读信息时优先透传（包括删除类操作），
// 仅在错误体不可解析或根本没有响应时使用兜底。
const (
	msgLoginFailed        = "Login failed"
	msgRegisterFailed     = "Registration failed"
	msgUploadFailed       = "Upload failed"
	msgUploadNetwork      = "A network error occurred during the upload."
	msgUploadMissingInfo  = "Cannot upload file: missing folder or user information."
	msgUserNotFound       = "User not found."
	msgCreateFolderFailed = "Folder creation failed"
	msgDeleteFileFailed   = "Failed to delete file."
	msgDeleteFolderFailed = "Failed to delete folder. It may not be empty."
	msgNetworkError       = "Network error. Please try again."
)

// failureMessage 将传输层错误归一化为面向用户的文案：
// 后端拒绝且信息可解析 → 透传；无响应 → 网络错误文案；其余 → 操作兜底。
func failureMessage(err error, fallback string) string {
	var apiErr *httpclient.APIError
	if errors.As(err, &apiErr) {
		if detail := apiErr.Detail(); detail != "" {
			return detail
		}
		return fallback
	}
	var netErr *httpclient.NetworkError
	if errors.As(err, &netErr) {
		return msgNetworkError
	}
	return fallback
}
