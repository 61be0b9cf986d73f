package parser

import (
	"regexp"
	"strings"
)

var spaceRe = regexp.MustCompile(`\s+`)

// NormalizeColumnName 规范化列名用于匹配：去除空白、BOM，统一小写
func NormalizeColumnName(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.TrimSpace(name)
	name = spaceRe.ReplaceAllString(name, "")
	return strings.ToLower(name)
}

// CleanHeader 保留原始写法，仅去除首尾空白和 BOM
func CleanHeader(name string) string {
	return strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
}

// isBlankRow 是否为空行
func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
