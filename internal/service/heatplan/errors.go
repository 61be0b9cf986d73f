package heatplan

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingInput 订单或库存文件缺失
	ErrMissingInput = errors.New("both order and stock files are required")
	// ErrUnreadableFile 文件无法解析
	ErrUnreadableFile = errors.New("unreadable file")
	// ErrMissingColumns 文件缺少必需列
	ErrMissingColumns = errors.New("missing required columns")
	// ErrQuantityLimit 订单总量超过上限
	ErrQuantityLimit = errors.New("total order quantity exceeds limit")
)

// ColumnsError 缺列错误，携带期望的列名
type ColumnsError struct {
	Role     string   // orders / stock
	Filename string   // 上传文件名
	Expected []string // 必需列（首选列名）
	Missing  []string // 未找到的列
}

func (e *ColumnsError) Error() string {
	return fmt.Sprintf("%s file %q: missing column(s) %s, expected %s",
		e.Role, e.Filename, strings.Join(e.Missing, ", "), strings.Join(e.Expected, ", "))
}

// Is 支持 errors.Is(err, ErrMissingColumns)
func (e *ColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}
