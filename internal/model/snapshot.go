package model

import "time"

// Snapshot 某一时刻的目录快照: 文件路径 -> 最后修改时间 (秒, 带小数部分)
// 每轮扫描重新生成, 生成后不再修改, 下一轮的快照直接取代它
type Snapshot map[string]float64

// ChangeSet 两份快照对比的结果
type ChangeSet struct {
	Added   []string  // 新出现的文件
	Changed []string  // 新增或修改过的文件 (包含 Added)
	At      time.Time // 本轮对比的时间
}

// Empty 本轮没有任何新增或修改
func (c ChangeSet) Empty() bool {
	return len(c.Changed) == 0
}
