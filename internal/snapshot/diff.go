package snapshot

import (
	"sort"
	"time"

	"github.com/Hara602/dirSentry/internal/model"
)

// Diff 对比前后两份快照
// Added: curr 有 prev 没有的路径
// Changed: curr 有且 (prev 没有 或 修改时间严格变大) 的路径, 包含全部 Added
// 时间戳相同不算变更: 秒级精度下同一秒内的连续修改分不出来, 这是已知限制
func Diff(prev, curr model.Snapshot) model.ChangeSet {
	cs := model.ChangeSet{At: time.Now()}
	for path, mtime := range curr {
		last, ok := prev[path]
		if !ok {
			cs.Added = append(cs.Added, path)
			cs.Changed = append(cs.Changed, path)
		} else if mtime > last {
			cs.Changed = append(cs.Changed, path)
		}
	}
	// map 遍历没有顺序, 排一下让日志和测试稳定
	sort.Strings(cs.Added)
	sort.Strings(cs.Changed)
	return cs
}

// Deleted 已从目录消失的路径 (prev 有 curr 没有)
// 主循环不上报删除, 需要的话调用方自己算
func Deleted(prev, curr model.Snapshot) []string {
	var gone []string
	for path := range prev {
		if _, ok := curr[path]; !ok {
			gone = append(gone, path)
		}
	}
	sort.Strings(gone)
	return gone
}
