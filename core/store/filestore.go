package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	coreerrors "github.com/dnslin/cloudstore-desktop/core/errors"
)

// FileStore 将键值对保存为单个 JSON 文件，适合桌面客户端的状态目录。
// 写入通过临时文件加重命名完成，避免写一半的状态文件。
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore 创建文件存储，父目录不存在时自动创建。
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, coreerrors.New(coreerrors.ErrCodeInvalidArgument, "store: 存储路径不能为空")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, coreerrors.Wrap(coreerrors.ErrCodeInvalidConfig, "store: 创建状态目录失败", err)
		}
	}
	return &FileStore{path: path}, nil
}

// Get 读取键值，文件或键不存在时返回存在标记 false。
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := data[key]
	return value, ok, nil
}

// Set 写入键值并立即落盘。
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return err
	}
	data[key] = value
	return s.save(data)
}

// Delete 删除键，键不存在时为空操作。
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.save(data)
}

func (s *FileStore) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, coreerrors.Wrap(coreerrors.ErrCodeInvalidConfig, "store: 读取状态文件失败", err)
	}
	data := map[string]string{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		// 状态文件损坏时按空数据处理，后续写入会覆盖。
		return map[string]string{}, nil
	}
	return data, nil
}

func (s *FileStore) save(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return coreerrors.Wrap(coreerrors.ErrCodeInvalidState, "store: 序列化状态失败", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return coreerrors.Wrap(coreerrors.ErrCodeInvalidConfig, "store: 写入状态文件失败", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return coreerrors.Wrap(coreerrors.ErrCodeInvalidConfig, "store: 替换状态文件失败", err)
	}
	return nil
}
