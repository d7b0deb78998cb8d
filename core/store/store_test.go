package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "cloudstore.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)

	_, ok, err := s.Get(KeyAuthToken)
	require.NoError(t, err)
	assert.False(t, ok, "空存储不应有键")

	require.NoError(t, s.Set(KeyAuthToken, "tok-1"))
	require.NoError(t, s.Set(KeyTheme, "dark"))

	// 重新打开，验证落盘
	s2, err := NewFileStore(path)
	require.NoError(t, err)
	value, ok, err := s2.Get(KeyAuthToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", value)

	require.NoError(t, s2.Delete(KeyAuthToken))
	_, ok, err = s2.Get(KeyAuthToken)
	require.NoError(t, err)
	assert.False(t, ok)

	theme, ok, err := s2.Get(KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", theme)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloudstore.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := NewFileStore(path)
	require.NoError(t, err)
	_, ok, err := s.Get(KeyCurrentUser)
	require.NoError(t, err, "损坏的状态文件应按空数据处理")
	assert.False(t, ok)

	require.NoError(t, s.Set(KeyCurrentUser, `{"id":"u1"}`))
	value, ok, err := s.Get(KeyCurrentUser)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"u1"}`, value)
}

func TestFileStoreDeleteMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloudstore.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	assert.NoError(t, s.Delete("missing"), "删除不存在的键应为空操作")
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set(KeyTheme, "light"))
	value, ok, err := s.Get(KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", value)

	require.NoError(t, s.Delete(KeyTheme))
	_, ok, _ = s.Get(KeyTheme)
	assert.False(t, ok)
}
