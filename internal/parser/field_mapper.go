package parser

import (
	"sort"

	"github.com/ravikumar1136/sailHeatPlan/internal/normalizer"
)

// FieldMapper 字段映射器：把文件表头对应到映射表中的字段
type FieldMapper struct{}

// NewFieldMapper 创建字段映射器
func NewFieldMapper() *FieldMapper {
	return &FieldMapper{}
}

// MapColumns 映射表头，返回列索引 -> 映射结果
// 同一字段出现多列时，按映射表中别名的先后取优先级最高的一列；一列只归属一个字段
func (m *FieldMapper) MapColumns(columnNames []string, fields normalizer.FieldTable) map[int]FieldMapping {
	mappings := make(map[int]FieldMapping)

	normalized := make([]string, len(columnNames))
	for i, col := range columnNames {
		normalized[i] = NormalizeColumnName(col)
	}

	names := make([]string, 0, len(fields))
	for f := range fields {
		names = append(names, string(f))
	}
	sort.Strings(names)

	for _, name := range names {
		field := normalizer.Field(name)
		aliases := fields[field]
		if len(aliases) == 0 {
			continue
		}
		best, bestRank := -1, len(aliases)
		for idx, col := range normalized {
			if col == "" {
				continue
			}
			if _, taken := mappings[idx]; taken {
				continue
			}
			for rank, alias := range aliases {
				if rank >= bestRank {
					break
				}
				if col == NormalizeColumnName(alias) {
					best, bestRank = idx, rank
					break
				}
			}
		}
		if best >= 0 {
			mappings[best] = FieldMapping{
				ColumnIndex: best,
				ColumnName:  CleanHeader(columnNames[best]),
				Field:       field,
				Canonical:   aliases[0],
			}
		}
	}

	return mappings
}

// RowKeys 每列在 RawRow 中使用的键：已映射列用首选列名，其余保留原表头
func (m *FieldMapper) RowKeys(columnNames []string, mappings map[int]FieldMapping) []string {
	keys := make([]string, len(columnNames))
	for i, col := range columnNames {
		if mp, ok := mappings[i]; ok {
			keys[i] = mp.Canonical
			continue
		}
		keys[i] = CleanHeader(col)
	}
	return keys
}
