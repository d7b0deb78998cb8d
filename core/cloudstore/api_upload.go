package cloudstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/dnslin/cloudstore-desktop/core/httpclient"
	"github.com/dnslin/cloudstore-desktop/core/model"
)

// Upload 描述一次上传：二进制内容加上文件元数据与目标文件夹。
type Upload struct {
	Name     string
	Size     int64
	Type     string
	FolderID string
	Content  io.Reader
}

// ProgressFunc 接收 [0,100] 的完成百分比，保证单调不减。
type ProgressFunc func(percent float64)

// UploadFile 以 multipart 方式上传文件并报告进度。前置条件：目标文件夹
// 与当前用户均已知，否则本地立即失败且不发起任何请求。所有结果（包括
// 网络失败）都归一化为 Result 包络，每次调用恰好产生一个终态。
func (c *Client) UploadFile(ctx context.Context, up Upload, onProgress ProgressFunc) Result[*model.File] {
	user := c.currentUser()
	if up.FolderID == "" || user == nil {
		return Fail[*model.File](msgUploadMissingInfo)
	}
	if up.Content == nil {
		return Fail[*model.File](msgUploadMissingInfo)
	}

	body, contentType, err := buildMultipart(up, user.ID)
	if err != nil {
		c.logger.Errorf("cloudstore: 构造上传请求体失败: %v", err)
		return Fail[*model.File](msgUploadFailed)
	}
	total := int64(body.Len())
	raw := body.Bytes()

	progress := &progressReader{
		r:     bytes.NewReader(raw),
		total: total,
		emit:  onProgress,
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(recordsPath(collectionFiles)), progress)
	if err != nil {
		return Fail[*model.File](msgUploadFailed)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.ContentLength = total
	req.GetBody = func() (io.ReadCloser, error) {
		// 重发时不再重复报告进度。
		return io.NopCloser(bytes.NewReader(raw)), nil
	}

	var file model.File
	if err := c.authedDo(req, &file); err != nil {
		c.logger.Debugf("cloudstore: 上传失败: %v", err)
		var netErr *httpclient.NetworkError
		if errors.As(err, &netErr) {
			return Fail[*model.File](msgUploadNetwork)
		}
		return Fail[*model.File](failureMessage(err, msgUploadFailed))
	}
	progress.finish()
	return Ok(&file)
}

// buildMultipart 组装 multipart 请求体：二进制 file 部分与
// name/size/type/folder/owner 字段。
func buildMultipart(up Upload, ownerID string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", up.Name)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, up.Content); err != nil {
		return nil, "", err
	}
	fields := map[string]string{
		"name":   up.Name,
		"size":   strconv.FormatInt(up.Size, 10),
		"type":   up.Type,
		"folder": up.FolderID,
		"owner":  ownerID,
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

// progressReader 在请求体被传输层读取时统计已发送字节并回调百分比。
// 仅在总大小已知时报告，回调值单调不减。
type progressReader struct {
	r     io.Reader
	total int64
	sent  int64
	last  float64
	emit  ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		p.report()
	}
	return n, err
}

func (p *progressReader) report() {
	if p.emit == nil || p.total <= 0 {
		return
	}
	percent := float64(p.sent) / float64(p.total) * 100
	if percent > 100 {
		percent = 100
	}
	if percent < p.last {
		return
	}
	p.last = percent
	p.emit(percent)
}

// finish 在确认成功后补发终值 100。
func (p *progressReader) finish() {
	if p.emit == nil || p.total <= 0 {
		return
	}
	if p.last < 100 {
		p.last = 100
		p.emit(100)
	}
}
