package watcher

import (
	"fmt"
	"os"
	"time"

	"github.com/Hara602/dirSentry/internal/filter"
	"github.com/Hara602/dirSentry/internal/model"
	"github.com/Hara602/dirSentry/internal/snapshot"
	"github.com/Hara602/dirSentry/internal/store"
)

// DirWatcher 定义接口
type DirWatcher interface {
	Start() error
	Stop()
}

// Config 单个监控实例的配置
// 多个目录各起一个实例即可, 实例之间不共享任何状态
type Config struct {
	Root     string                // 监控根目录
	Filter   *filter.Filter        // 可为 nil, 表示全部纳入
	Store    store.SnapshotStore   // 快照持久化后端
	Interval time.Duration         // 轮询间隔, <=0 时取 1s
	OnChange func(model.ChangeSet) // 发现变更时同步回调, 可为 nil
}

// New 校验配置并创建监控实例
// 根目录不存在直接报错, 不会进入轮询
func New(cfg Config) (DirWatcher, error) {
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &pollWatcher{
		cfg:  cfg,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}, nil
}

func validate(cfg *Config) error {
	info, err := os.Stat(cfg.Root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", snapshot.ErrDirNotFound, cfg.Root)
	}
	if cfg.Store == nil {
		return fmt.Errorf("watcher: store is required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	return nil
}
