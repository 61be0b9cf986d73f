package parser

import (
	"github.com/ravikumar1136/sailHeatPlan/internal/model"
	"github.com/ravikumar1136/sailHeatPlan/internal/normalizer"
)

// Format 上传文件格式
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Schema 一类表格的字段要求
type Schema struct {
	Type     model.SheetType
	Fields   normalizer.FieldTable
	Required []normalizer.Field
}

// OrderSchema 订单表：钢种、宽度、数量必需
func OrderSchema(fields normalizer.FieldTable) Schema {
	return Schema{
		Type:     model.SheetTypeOrders,
		Fields:   fields,
		Required: []normalizer.Field{normalizer.FieldGrade, normalizer.FieldWidth, normalizer.FieldQuantity},
	}
}

// StockSchema 库存表：钢种、宽度必需，包号可选
func StockSchema(fields normalizer.FieldTable) Schema {
	return Schema{
		Type:     model.SheetTypeStock,
		Fields:   fields,
		Required: []normalizer.Field{normalizer.FieldGrade, normalizer.FieldWidth},
	}
}

// ExpectedColumns 必需字段的首选列名，用于错误提示
func (s Schema) ExpectedColumns() []string {
	cols := make([]string, 0, len(s.Required))
	for _, f := range s.Required {
		if name := s.Fields.Canonical(f); name != "" {
			cols = append(cols, name)
		}
	}
	return cols
}

// FieldMapping 列映射结果
type FieldMapping struct {
	ColumnIndex int              `json:"columnIndex"` // 列索引
	ColumnName  string           `json:"columnName"`  // 文件中的列名
	Field       normalizer.Field `json:"field"`       // 目标字段
	Canonical   string           `json:"canonical"`   // 映射表中的首选列名
}

// Sheet 解析结果
type Sheet struct {
	FileID      string                 `json:"fileId"`
	Filename    string                 `json:"filename"`
	Format      Format                 `json:"format"`
	SheetName   string                 `json:"sheetName,omitempty"`
	Headers     []string               `json:"headers"`
	Rows        []model.RawRow         `json:"-"`
	Recognition model.SheetRecognition `json:"recognition"`
}

// Complete 必需字段是否全部找到
func (s *Sheet) Complete() bool {
	return len(s.Recognition.MissingFields) == 0
}
