package auth

import (
	"testing"

	"github.com/dnslin/cloudstore-desktop/core/model"
	"github.com/dnslin/cloudstore-desktop/core/store"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(store.NewMemoryStore())

	if m.Authenticated() {
		t.Fatal("初始状态不应已认证")
	}
	if m.User() != nil {
		t.Fatal("初始状态不应有用户")
	}

	user := &model.User{ID: "u1", Username: "alice"}
	if err := m.Establish("tok-1", user); err != nil {
		t.Fatalf("建立会话失败: %v", err)
	}
	if !m.Authenticated() {
		t.Fatal("登录后应已认证")
	}
	if m.Token() != "tok-1" {
		t.Fatalf("令牌不匹配: %q", m.Token())
	}
	got := m.User()
	if got == nil || got.ID != "u1" || got.Username != "alice" {
		t.Fatalf("用户快照不匹配: %+v", got)
	}

	m.Clear()
	if m.Authenticated() {
		t.Fatal("登出后不应已认证")
	}
	if m.User() != nil {
		t.Fatal("登出后不应有用户")
	}
}

func TestManagerCorruptUserIsAbsent(t *testing.T) {
	kv := store.NewMemoryStore()
	if err := kv.Set(store.KeyCurrentUser, "{broken json"); err != nil {
		t.Fatalf("预置数据失败: %v", err)
	}
	if err := kv.Set(store.KeyAuthToken, "tok-1"); err != nil {
		t.Fatalf("预置数据失败: %v", err)
	}

	m := NewManager(kv)
	if m.User() != nil {
		t.Fatal("无法解析的用户快照应按无用户处理")
	}
	// 令牌不受影响
	if !m.Authenticated() {
		t.Fatal("令牌仍然有效")
	}
}

func TestManagerNilStore(t *testing.T) {
	m := NewManager(nil)
	if err := m.Establish("tok", nil); err == nil {
		t.Fatal("未注入存储时应返回错误")
	}
	if m.Token() != "" {
		t.Fatal("未注入存储时令牌应为空")
	}
	m.Clear() // 不应 panic
}

func TestSessionClone(t *testing.T) {
	s := &Session{Token: "tok", User: &model.User{ID: "u1"}}
	cp := s.Clone()
	cp.User.ID = "u2"
	if s.User.ID != "u1" {
		t.Fatal("Clone 不应共享用户指针")
	}
	if !s.Authenticated() {
		t.Fatal("带令牌的会话应已认证")
	}
	if s.UserID() != "u1" {
		t.Fatalf("UserID 不匹配: %q", s.UserID())
	}
}
