package parser

import (
	"github.com/ravikumar1136/sailHeatPlan/internal/model"
)

// SheetRecognizer Sheet 类型识别器
type SheetRecognizer struct {
	mapper *FieldMapper
}

// NewSheetRecognizer 创建识别器
func NewSheetRecognizer(mapper *FieldMapper) *SheetRecognizer {
	if mapper == nil {
		mapper = NewFieldMapper()
	}
	return &SheetRecognizer{mapper: mapper}
}

// Recognize 按必需字段命中比例给表头打分
func (r *SheetRecognizer) Recognize(sheetName string, columnNames []string, schema Schema) model.SheetRecognition {
	mappings := r.mapper.MapColumns(columnNames, schema.Fields)

	found := make(map[string]bool, len(mappings))
	for _, mp := range mappings {
		found[string(mp.Field)] = true
	}

	missing := make([]string, 0)
	matched := 0
	for _, f := range schema.Required {
		if found[string(f)] {
			matched++
			continue
		}
		missing = append(missing, schema.Fields.Canonical(f))
	}

	score := 1.0
	if len(schema.Required) > 0 {
		score = float64(matched) / float64(len(schema.Required))
	}

	sheetType := schema.Type
	if matched == 0 {
		sheetType = model.SheetTypeUnknown
	}

	return model.SheetRecognition{
		SheetName:     sheetName,
		Type:          sheetType,
		Score:         score,
		MissingFields: missing,
	}
}
