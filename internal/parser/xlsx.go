package parser

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readXLSX 选出与 schema 最匹配的工作表；都不匹配时取第一个非空工作表
func (p *Parser) readXLSX(data []byte, schema Schema) (*rawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer f.Close()

	var (
		best      *rawTable
		bestScore = -1.0
	)
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		t := tableFromRows(name, rows)
		if t == nil {
			continue
		}
		rec := p.recognizer.Recognize(name, t.header, schema)
		if rec.Score > bestScore {
			best, bestScore = t, rec.Score
		}
	}

	if best == nil {
		return &rawTable{}, nil
	}
	return best, nil
}

// tableFromRows 跳过表头之前的空行
func tableFromRows(sheetName string, rows [][]string) *rawTable {
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		return &rawTable{
			sheetName: sheetName,
			header:    row,
			records:   rows[i+1:],
		}
	}
	return nil
}
