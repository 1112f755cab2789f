package watcher

import (
	"errors"
	"fmt"
	"time"

	"github.com/Hara602/dirSentry/internal/model"
	"github.com/Hara602/dirSentry/internal/snapshot"
	"github.com/Hara602/dirSentry/internal/store"
	"github.com/Hara602/dirSentry/internal/sysutil"
	"go.uber.org/zap"
)

type pollWatcher struct {
	cfg  Config
	stop chan struct{}
	done chan struct{}
}

// Start 启动轮询 goroutine
func (w *pollWatcher) Start() error {
	go w.run()
	return nil
}

// Stop 通知退出并等当前这轮跑完, 不会留下写一半的快照
func (w *pollWatcher) Stop() {
	close(w.stop)
	<-w.done
}

func (w *pollWatcher) run() {
	defer close(w.done)
	for {
		select {
		case <-w.stop:
			return
		default:
		}

		// 轮询中的错误只记日志, 循环继续跑
		if _, err := runCycle(w.cfg); err != nil {
			sysutil.Log.Error("poll cycle failed", zap.String("root", w.cfg.Root), zap.Error(err))
		}

		// sleep 要能被 Stop 打断
		select {
		case <-w.stop:
			return
		case <-time.After(w.cfg.Interval):
		}
	}
}

// CheckOnce 单次检查: 对照上次快照报告一轮变更并落盘, 不进入循环
func CheckOnce(cfg Config) (model.ChangeSet, error) {
	if err := validate(&cfg); err != nil {
		return model.ChangeSet{}, err
	}
	return runCycle(cfg)
}

// runCycle 一轮完整的 加载 -> 扫描 -> 对比 -> 回调 -> 落盘
func runCycle(cfg Config) (model.ChangeSet, error) {
	prev, err := cfg.Store.Load()
	if err != nil {
		if !errors.Is(err, store.ErrCorruptSnapshot) {
			return model.ChangeSet{}, fmt.Errorf("load snapshot: %w", err)
		}
		// 记录坏了按首次运行处理, 但要喊一声让人去查
		sysutil.Log.Warn("snapshot record corrupt, treating as first run", zap.Error(err))
		prev = model.Snapshot{}
	}

	curr, err := snapshot.Capture(cfg.Root, cfg.Filter)
	if err != nil {
		return model.ChangeSet{}, fmt.Errorf("capture: %w", err)
	}

	cs := snapshot.Diff(prev, curr)
	if !cs.Empty() && cfg.OnChange != nil {
		invokeCallback(cfg.OnChange, cs)
	}

	if err := cfg.Store.Save(curr); err != nil {
		return cs, fmt.Errorf("save snapshot: %w", err)
	}
	return cs, nil
}

// invokeCallback 回调是外部代码, panic 不能带崩轮询
func invokeCallback(fn func(model.ChangeSet), cs model.ChangeSet) {
	defer func() {
		if r := recover(); r != nil {
			sysutil.Log.Error("change callback panicked", zap.Any("panic", r))
		}
	}()
	fn(cs)
}
