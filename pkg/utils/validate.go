package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var handlePattern = regexp.MustCompile(`^[a-z0-9_.]{3,30}$`)

// ValidHandle 用户名只允许小写字母、数字、下划线和点
func ValidHandle(name string) bool {
	return handlePattern.MatchString(name)
}

// RuneLen 按字符计数，中文标题不按字节截断
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// IsBlank 去除空白后为空
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// NormalizePage 页码从1开始，size限制在[1,max]
func NormalizePage(page, size, def, max int64) (offset, limit int64) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = def
	}
	if size > max {
		size = max
	}
	return (page - 1) * size, size
}
