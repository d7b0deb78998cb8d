// Package auth 管理客户端会话：不透明令牌与登录时缓存的用户快照。
package auth

import "github.com/dnslin/cloudstore-desktop/core/model"

// Session 记录当前会话凭证与用户快照。令牌没有过期或刷新逻辑，
// 在后端拒绝之前一直被信任。
type Session struct {
	Token string      `json:"token,omitempty"`
	User  *model.User `json:"user,omitempty"`
}

// Authenticated 仅判断令牌是否存在，不向后端校验。
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// UserID 返回当前用户 ID，无用户时为空。
func (s *Session) UserID() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.ID
}

// Clone 返回会话的浅拷贝，避免直接暴露内部指针。
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	if s.User != nil {
		u := *s.User
		cp.User = &u
	}
	return &cp
}
