package model

// FileStats 单个上传文件的读取统计
type FileStats struct {
	Filename  string `json:"filename"`
	SheetName string `json:"sheetName,omitempty"`
	RowsRead  int    `json:"rowsRead"`
	RowsKept  int    `json:"rowsKept"`
}

// RowsDropped 被规范化过滤掉的行数
func (s FileStats) RowsDropped() int {
	return s.RowsRead - s.RowsKept
}
