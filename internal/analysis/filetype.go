package analysis

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// Result 检测结果
type Result struct {
	IsMasquerade bool   // 后缀和文件头对不上
	RealExt      string // 文件头识别出的真实类型
	DeclaredExt  string // 文件名声明的后缀
	RiskLevel    string // HIGH, MEDIUM, SAFE
	Message      string
}

// Inspector 文件类型检查器: 对比文件头 Magic Bytes 和文件名后缀
type Inspector struct {
	aliases map[string]map[string]bool
}

// NewInspector 初始化检查器并装入兼容性规则
func NewInspector() *Inspector {
	i := &Inspector{aliases: make(map[string]map[string]bool)}

	// 合法的"表里不一": 真实类型 -> 允许的声明后缀
	allow := func(realType string, exts ...string) {
		m := make(map[string]bool, len(exts)+1)
		m[realType] = true
		for _, e := range exts {
			m[e] = true
		}
		i.aliases[realType] = m
	}

	// Office/Java/Android 的容器本质都是 zip, 是最大误报源
	allow("zip",
		"docx", "docm", "xlsx", "xlsm", "pptx", "pptm",
		"jar", "war", "apk",
		"odt", "ods", "odp",
		"whl", "nupkg", "crx",
	)
	allow("xml", "svg", "html", "htm", "plist", "config")
	allow("mp4", "m4v", "mov")
	allow("ogg", "ogv", "oga")
	allow("exe", "dll", "sys", "scr", "cpl", "ocx")
	allow("gz", "gzip", "tgz")

	return i
}

// Inspect 读取文件头识别真实类型, 和声明后缀比对
// 无后缀/空文件/未知签名(多半是纯文本)都放行
func (i *Inspector) Inspect(filePath string) (*Result, error) {
	rawExt := filepath.Ext(filePath)
	if rawExt == "" {
		return &Result{RiskLevel: "SAFE", Message: "No extension"}, nil
	}
	declaredExt := strings.ToLower(strings.TrimPrefix(rawExt, "."))

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file failed:%v", err)
	}
	defer file.Close()

	// 262 字节是 filetype 库建议的读取长度
	head := make([]byte, 262)
	n, err := file.Read(head)
	if err != nil && n == 0 {
		return &Result{RiskLevel: "SAFE", Message: "Empty file"}, nil
	}

	kind, _ := filetype.Match(head)
	if kind == filetype.Unknown {
		return &Result{RealExt: "unknown", DeclaredExt: declaredExt, RiskLevel: "SAFE",
			Message: "Unknown binary signature (likely text)"}, nil
	}

	realExt := kind.Extension
	if realExt == declaredExt {
		return &Result{RealExt: realExt, DeclaredExt: declaredExt, RiskLevel: "SAFE"}, nil
	}
	if i.aliases[realExt][declaredExt] {
		return &Result{RealExt: realExt, DeclaredExt: declaredExt, RiskLevel: "SAFE",
			Message: fmt.Sprintf("Allowed alias: %s is compatible with %s", declaredExt, realExt)}, nil
	}

	risk := "MEDIUM"
	if realExt == "exe" || realExt == "elf" || realExt == "dll" {
		// 可执行文件伪装成其他格式, 极度危险
		risk = "HIGH"
	}
	return &Result{
		IsMasquerade: true,
		RealExt:      realExt,
		DeclaredExt:  declaredExt,
		RiskLevel:    risk,
		Message:      fmt.Sprintf("Type Mismatch! Header is '%s' but file is '%s'", realExt, declaredExt),
	}, nil
}
