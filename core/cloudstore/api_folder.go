package cloudstore

import (
	"context"
	"net/http"

	"github.com/dnslin/cloudstore-desktop/core/model"
)

// ListFolders 列出当前用户可见的文件夹。读取路径按约定优雅降级：
// 任何失败都吞掉并返回空列表，不向调用方上抛。
func (c *Client) ListFolders(ctx context.Context) []model.Folder {
	req, err := c.newRequest(ctx, http.MethodGet, recordsPath(collectionFolders), nil, nil)
	if err != nil {
		return nil
	}
	var rsp folderListResponse
	if err := c.authedDo(req, &rsp); err != nil {
		c.logger.Debugf("cloudstore: 文件夹列表失败，返回空列表: %v", err)
		return nil
	}
	return rsp.Items
}

// CreateFolder 创建文件夹，owner 取当前用户。无已知用户时本地快速失败，
// 不发起网络请求。
func (c *Client) CreateFolder(ctx context.Context, name string) Result[*model.Folder] {
	user := c.currentUser()
	if user == nil {
		return Fail[*model.Folder](msgUserNotFound)
	}
	req, err := c.newRequest(ctx, http.MethodPost, recordsPath(collectionFolders), nil, createFolderRequest{
		Name:  name,
		Owner: user.ID,
	})
	if err != nil {
		return Fail[*model.Folder](msgCreateFolderFailed)
	}
	var folder model.Folder
	if err := c.authedDo(req, &folder); err != nil {
		c.logger.Debugf("cloudstore: 创建文件夹失败: %v", err)
		return Fail[*model.Folder](failureMessage(err, msgCreateFolderFailed))
	}
	return Ok(&folder)
}

// DeleteFolder 删除文件夹。后端会拒绝非空文件夹，拒绝信息可解析时透传，
// 否则使用提示可能非空的兜底文案。
func (c *Client) DeleteFolder(ctx context.Context, id string) Result[Nothing] {
	req, err := c.newRequest(ctx, http.MethodDelete, recordPath(collectionFolders, id), nil, nil)
	if err != nil {
		return Fail[Nothing](msgDeleteFolderFailed)
	}
	if err := c.authedDo(req, nil); err != nil {
		c.logger.Debugf("cloudstore: 删除文件夹失败: %v", err)
		return Fail[Nothing](failureMessage(err, msgDeleteFolderFailed))
	}
	return Done()
}

func (c *Client) currentUser() *model.User {
	if c == nil || c.session == nil {
		return nil
	}
	return c.session.User()
}
