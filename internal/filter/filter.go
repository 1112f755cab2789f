package filter

import (
	"fmt"
	"regexp"
)

// Filter 路径过滤器: 白名单 + 黑名单的正则集合
// 正则是子串匹配 (不锚定整个路径), 所以一条 "tmp" 黑名单就能排除所有路径里带 tmp 的文件
type Filter struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// New 编译 include/exclude 正则集合, 任一条编译失败立即报错
func New(include, exclude []string) (*Filter, error) {
	f := &Filter{}
	for _, pat := range include {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("bad include pattern %q: %w", pat, err)
		}
		f.include = append(f.include, re)
	}
	for _, pat := range exclude {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", pat, err)
		}
		f.exclude = append(f.exclude, re)
	}
	return f, nil
}

// Match 判断路径是否纳入快照
// 黑名单优先: 命中任一 exclude 直接排除
// include 为空时全部放行, 否则必须命中至少一条
func (f *Filter) Match(path string) bool {
	for _, re := range f.exclude {
		if re.MatchString(path) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, re := range f.include {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
