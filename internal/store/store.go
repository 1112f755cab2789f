package store

import (
	"errors"

	"github.com/Hara602/dirSentry/internal/model"
)

// ErrCorruptSnapshot 快照记录存在但解析不出来
// 调用方一般当首次运行处理, 但要和"没有记录"区分开, 方便排查
var ErrCorruptSnapshot = errors.New("snapshot record is corrupt")

// SnapshotStore 快照持久化后端
// 每个监控实例独占一个存储位置, Save 整体覆盖旧记录, 不保留历史
type SnapshotStore interface {
	Load() (model.Snapshot, error)
	Save(model.Snapshot) error
	Close() error
}
