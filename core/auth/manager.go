package auth

import (
	"encoding/json"
	"sync"

	coreerrors "github.com/dnslin/cloudstore-desktop/core/errors"
	"github.com/dnslin/cloudstore-desktop/core/model"
	"github.com/dnslin/cloudstore-desktop/core/store"
)

// ErrStoreNil 在未注入存储时返回。
var ErrStoreNil = coreerrors.New(coreerrors.ErrCodeInvalidConfig, "auth: 未设置本地存储")

// Manager 持有会话状态并负责持久化。所有资源客户端在构造时注入同一个
// Manager，会话不再通过全局环境隐式读取。生命周期：init → authenticated → cleared。
type Manager struct {
	mu sync.RWMutex
	kv store.KeyValue
}

// NewManager 创建会话管理器。
func NewManager(kv store.KeyValue) *Manager {
	return &Manager{kv: kv}
}

// Token 返回持久化的令牌，不存在或读取失败时为空。
func (m *Manager) Token() string {
	if m == nil || m.kv == nil {
		return ""
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	token, _, err := m.kv.Get(store.KeyAuthToken)
	if err != nil {
		return ""
	}
	return token
}

// User 返回登录时缓存的用户快照。持久化内容无法解析时按无用户处理，
// 不上抛错误。
func (m *Manager) User() *model.User {
	if m == nil || m.kv == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok, err := m.kv.Get(store.KeyCurrentUser)
	if err != nil || !ok || raw == "" {
		return nil
	}
	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

// Authenticated 仅判断令牌是否存在，纯本地操作。
func (m *Manager) Authenticated() bool {
	return m.Token() != ""
}

// Establish 在登录成功后写入令牌与用户快照。
func (m *Manager) Establish(token string, user *model.User) error {
	if m == nil || m.kv == nil {
		return ErrStoreNil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.kv.Set(store.KeyAuthToken, token); err != nil {
		return coreerrors.Wrap(coreerrors.ErrCodeInvalidConfig, "auth: 保存令牌失败", err)
	}
	if user == nil {
		return m.kv.Delete(store.KeyCurrentUser)
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return coreerrors.Wrap(coreerrors.ErrCodeInvalidState, "auth: 序列化用户失败", err)
	}
	if err := m.kv.Set(store.KeyCurrentUser, string(raw)); err != nil {
		return coreerrors.Wrap(coreerrors.ErrCodeInvalidConfig, "auth: 保存用户失败", err)
	}
	return nil
}

// Clear 登出时清空会话。不访问网络，按约定不会失败，存储错误被忽略。
func (m *Manager) Clear() {
	if m == nil || m.kv == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_ = m.kv.Delete(store.KeyAuthToken)
	_ = m.kv.Delete(store.KeyCurrentUser)
}

// Session 返回当前会话快照。
func (m *Manager) Session() *Session {
	return &Session{Token: m.Token(), User: m.User()}
}
