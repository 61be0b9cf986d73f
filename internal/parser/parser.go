package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ravikumar1136/sailHeatPlan/internal/model"
)

var (
	// ErrEmptyFile 文件为空或没有表头
	ErrEmptyFile = errors.New("file is empty")
	// ErrUnsupportedFormat 不支持的文件格式（如旧版 .xls）
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

var zipMagic = []byte("PK\x03\x04")

// Parser 上传文件解析器（CSV / XLSX -> 原始行）
type Parser struct {
	mapper     *FieldMapper
	recognizer *SheetRecognizer
}

// NewParser 创建解析器
func NewParser() *Parser {
	mapper := NewFieldMapper()
	return &Parser{
		mapper:     mapper,
		recognizer: NewSheetRecognizer(mapper),
	}
}

// DetectFormat 根据扩展名与文件头判断格式
func DetectFormat(filename string, head []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".xls":
		return "", fmt.Errorf("%w: %s (save as .xlsx or .csv)", ErrUnsupportedFormat, filename)
	case ".csv", ".txt":
		return FormatCSV, nil
	}
	if bytes.HasPrefix(head, zipMagic) {
		return FormatXLSX, nil
	}
	return FormatCSV, nil
}

// Parse 读取整个文件并按 schema 识别列
func (p *Parser) Parse(filename string, r io.Reader, schema Schema) (*Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, ErrEmptyFile)
	}

	format, err := DetectFormat(filename, data)
	if err != nil {
		return nil, err
	}

	var table *rawTable
	switch format {
	case FormatXLSX:
		table, err = p.readXLSX(data, schema)
	default:
		table, err = readCSV(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if len(table.header) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, ErrEmptyFile)
	}

	sheet := p.buildSheet(table, schema)
	sheet.FileID = uuid.New().String()
	sheet.Filename = filename
	sheet.Format = format
	return sheet, nil
}

// rawTable 表头 + 数据行（未映射）
type rawTable struct {
	sheetName string
	header    []string
	records   [][]string
}

func (p *Parser) buildSheet(t *rawTable, schema Schema) *Sheet {
	mappings := p.mapper.MapColumns(t.header, schema.Fields)
	keys := p.mapper.RowKeys(t.header, mappings)

	rows := make([]model.RawRow, 0, len(t.records))
	for _, rec := range t.records {
		if isBlankRow(rec) {
			continue
		}
		row := make(model.RawRow, len(keys))
		for i, key := range keys {
			if key == "" {
				continue
			}
			if _, dup := row[key]; dup {
				continue
			}
			value := ""
			if i < len(rec) {
				value = strings.TrimSpace(rec[i])
			}
			row[key] = value
		}
		rows = append(rows, row)
	}

	headers := make([]string, len(t.header))
	for i, h := range t.header {
		headers[i] = CleanHeader(h)
	}

	return &Sheet{
		SheetName:   t.sheetName,
		Headers:     headers,
		Rows:        rows,
		Recognition: p.recognizer.Recognize(t.sheetName, t.header, schema),
	}
}
