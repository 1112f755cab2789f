package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Hara602/dirSentry/internal/model"
)

type fileStore struct {
	path string
}

// NewFileStore 默认后端: 单个 JSON 文件, 路径 -> 修改时间
func NewFileStore(path string) SnapshotStore {
	return &fileStore{path: path}
}

func (s *fileStore) Load() (model.Snapshot, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		// 首次运行: 没有记录不是错误
		return model.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}
	var snap model.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptSnapshot, s.path, err)
	}
	if snap == nil {
		// 文件内容是 JSON null
		snap = model.Snapshot{}
	}
	return snap, nil
}

// Save 先写临时文件再 rename, 避免留下写了一半的快照
func (s *fileStore) Save(snap model.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace snapshot %s: %w", s.path, err)
	}
	return nil
}

func (s *fileStore) Close() error { return nil }
