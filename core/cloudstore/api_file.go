package cloudstore

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dnslin/cloudstore-desktop/core/model"
)

// ListFiles 列出指定文件夹下的文件。folderID 为空时直接返回空列表且
// 不发起网络请求；请求失败同样返回空列表（读取路径优雅降级）。
func (c *Client) ListFiles(ctx context.Context, folderID string) []model.File {
	if folderID == "" {
		return nil
	}
	query := url.Values{}
	query.Set("filter", "(folder='"+folderID+"')")
	req, err := c.newRequest(ctx, http.MethodGet, recordsPath(collectionFiles), query, nil)
	if err != nil {
		return nil
	}
	var rsp fileListResponse
	if err := c.authedDo(req, &rsp); err != nil {
		c.logger.Debugf("cloudstore: 文件列表失败，返回空列表: %v", err)
		return nil
	}
	return rsp.Items
}

// DeleteFile 删除单个文件记录。
func (c *Client) DeleteFile(ctx context.Context, id string) Result[Nothing] {
	req, err := c.newRequest(ctx, http.MethodDelete, recordPath(collectionFiles, id), nil, nil)
	if err != nil {
		return Fail[Nothing](msgDeleteFileFailed)
	}
	if err := c.authedDo(req, nil); err != nil {
		c.logger.Debugf("cloudstore: 删除文件失败: %v", err)
		return Fail[Nothing](failureMessage(err, msgDeleteFileFailed))
	}
	return Done()
}

// DownloadURL 拼出文件内容的下载地址。
func (c *Client) DownloadURL(file *model.File) string {
	if c == nil || file == nil || file.ID == "" || file.StoredKey == "" {
		return ""
	}
	return c.endpoint("/api/files/" + collectionFiles + "/" + file.ID + "/" + file.StoredKey)
}
