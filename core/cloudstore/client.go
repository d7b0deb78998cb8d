// Package cloudstore 实现 CloudStore 后端（通用记录 CRUD + 二进制文件存储）
// 的资源客户端：认证、文件夹、文件与带进度的上传。所有操作将结果归一化为
// Result 包络，错误不会越过本层边界向外抛出。
package cloudstore

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dnslin/cloudstore-desktop/core/auth"
	"github.com/dnslin/cloudstore-desktop/core/httpclient"
)

// DefaultBaseURL 是本地开发后端的默认地址。
const DefaultBaseURL = "http://127.0.0.1:8090"

// Client 封装对 CloudStore 后端的记录与文件操作。会话在构造时注入，
// 所有鉴权请求从中读取令牌。
type Client struct {
	http    *httpclient.Client
	session *auth.Manager
	logger  httpclient.Logger
	baseURL string
}

// Option 自定义客户端配置。
type Option func(*Client)

// WithHTTPClient 注入自定义 httpclient.Client。
func WithHTTPClient(cli *httpclient.Client) Option {
	return func(c *Client) {
		if cli != nil {
			c.http = cli
		}
	}
}

// WithLogger 注入日志接口。
func WithLogger(logger httpclient.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
			if c.http != nil {
				c.http.Logger = logger
			}
		}
	}
}

// WithBaseURL 替换默认的后端地址。
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// NewClient 创建默认客户端。
func NewClient(session *auth.Manager, opts ...Option) *Client {
	cli := &Client{
		http:    httpclient.NewClient(),
		session: session,
		logger:  httpclient.NopLogger{},
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cli)
		}
	}
	if cli.http == nil {
		cli.http = httpclient.NewClient()
	}
	if cli.logger == nil {
		cli.logger = httpclient.NopLogger{}
	}
	cli.http.Logger = cli.logger
	return cli
}

// Session 返回注入的会话管理器。
func (c *Client) Session() *auth.Manager {
	return c.session
}

// token 供中间件读取当前令牌。
func (c *Client) token() string {
	if c.session == nil {
		return ""
	}
	return c.session.Token()
}

func recordsPath(collection string) string {
	return "/api/collections/" + collection + "/records"
}

func recordPath(collection, id string) string {
	return recordsPath(collection) + "/" + id
}

func (c *Client) endpoint(path string) string {
	if strings.HasPrefix(path, "/") {
		return c.baseURL + path
	}
	return c.baseURL + "/" + path
}

// newRequest 构建 JSON 请求，query 与 body 均可为空。
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.endpoint(path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var reader io.Reader
	var raw []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		raw = encoded
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if raw != nil {
		req.Header.Set("Content-Type", "application/json")
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(raw)), nil
		}
	}
	return req, nil
}

// do 发送请求，mw 为本次请求追加的中间件。中间件直接作用在请求上，
// 客户端自身不被修改，可安全并发调用。
func (c *Client) do(req *http.Request, out any, mw ...httpclient.Middleware) error {
	if err := httpclient.PrepareChain(mw).Apply(req); err != nil {
		return err
	}
	return c.http.Do(req, out)
}

// authedDo 为请求附加 Bearer 令牌后发送。
func (c *Client) authedDo(req *http.Request, out any) error {
	return c.do(req, out, httpclient.WithBearer(c.token))
}
