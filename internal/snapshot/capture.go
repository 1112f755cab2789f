package snapshot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/Hara602/dirSentry/internal/filter"
	"github.com/Hara602/dirSentry/internal/model"
	"github.com/Hara602/dirSentry/internal/sysutil"
)

// ErrDirNotFound 监控根目录不存在或不是目录
var ErrDirNotFound = errors.New("watch root is not a directory")

// Capture 递归扫描 root, 对通过过滤器的普通文件记录修改时间
// 单个条目读不了(权限/瞬间被删)只跳过该条目, 不中断整个扫描
func Capture(root string, f *filter.Filter) (model.Snapshot, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirNotFound, root)
	}

	snap := make(model.Snapshot)
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			sysutil.LogSugar.Debugf("skip unreadable entry: %s (%v)", path, err)
			return nil
		}
		// 目录、符号链接等非普通文件不入快照
		if !d.Type().IsRegular() {
			return nil
		}
		if f != nil && !f.Match(path) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			sysutil.LogSugar.Debugf("skip entry, stat failed: %s (%v)", path, err)
			return nil
		}
		snap[path] = float64(fi.ModTime().UnixNano()) / float64(time.Second)
		return nil
	})
	return snap, nil
}
