package cloudstore

import (
	"github.com/dnslin/cloudstore-desktop/core/model"
)

// 后端集合名。
const (
	collectionUsers   = "users"
	collectionFolders = "folders"
	collectionFiles   = "files"
)

// authResponse 是口令认证接口的响应体。
type authResponse struct {
	Token  string     `json:"token"`
	Record model.User `json:"record"`
}

// folderListResponse 是文件夹列表接口的响应体。
type folderListResponse struct {
	Page       int            `json:"page,omitempty"`
	PerPage    int            `json:"perPage,omitempty"`
	TotalItems int            `json:"totalItems,omitempty"`
	Items      []model.Folder `json:"items"`
}

// fileListResponse 是文件列表接口的响应体。
type fileListResponse struct {
	Page       int          `json:"page,omitempty"`
	PerPage    int          `json:"perPage,omitempty"`
	TotalItems int          `json:"totalItems,omitempty"`
	Items      []model.File `json:"items"`
}

// registerRequest 是创建账号的请求体。
type registerRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// loginRequest 是口令认证的请求体。
type loginRequest struct {
	Identity string `json:"identity"`
	Password string `json:"password"`
}

// createFolderRequest 是创建文件夹的请求体。
type createFolderRequest struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
}
