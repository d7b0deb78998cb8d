package cloudstore

import (
	"context"
	"net/http"

	"github.com/dnslin/cloudstore-desktop/core/model"
)

const pathAuthWithPassword = "/api/collections/" + collectionUsers + "/auth-with-password"

// Authenticated 仅判断本地是否存在令牌，不向后端校验。
func (c *Client) Authenticated() bool {
	return c != nil && c.session != nil && c.session.Authenticated()
}

// Login 以用户名（或邮箱）加口令认证。成功时把令牌与用户快照写入会话，
// 失败时透传后端信息或使用兜底文案；会话保持不变。
func (c *Client) Login(ctx context.Context, identifier, password string) Result[*model.User] {
	req, err := c.newRequest(ctx, http.MethodPost, pathAuthWithPassword, nil, loginRequest{
		Identity: identifier,
		Password: password,
	})
	if err != nil {
		return Fail[*model.User](msgLoginFailed)
	}
	var rsp authResponse
	if err := c.do(req, &rsp); err != nil {
		c.logger.Debugf("cloudstore: 登录失败: %v", err)
		return Fail[*model.User](failureMessage(err, msgLoginFailed))
	}
	user := rsp.Record
	if c.session != nil {
		if err := c.session.Establish(rsp.Token, &user); err != nil {
			c.logger.Errorf("cloudstore: 会话持久化失败: %v", err)
			return Fail[*model.User](msgLoginFailed)
		}
	}
	return Ok(&user)
}

// Register 创建新账号。不产生会话副作用，调用方需另行登录。
func (c *Client) Register(ctx context.Context, username, password, passwordConfirm string) Result[*model.User] {
	req, err := c.newRequest(ctx, http.MethodPost, recordsPath(collectionUsers), nil, registerRequest{
		Username:        username,
		Password:        password,
		PasswordConfirm: passwordConfirm,
	})
	if err != nil {
		return Fail[*model.User](msgRegisterFailed)
	}
	var user model.User
	if err := c.do(req, &user); err != nil {
		c.logger.Debugf("cloudstore: 注册失败: %v", err)
		return Fail[*model.User](failureMessage(err, msgRegisterFailed))
	}
	return Ok(&user)
}

// Logout 清空本地会话。不访问网络，不会失败。
func (c *Client) Logout() {
	if c != nil && c.session != nil {
		c.session.Clear()
	}
}
