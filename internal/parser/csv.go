package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// readCSV 解析 CSV：首行为表头，空行跳过，短行补空
func readCSV(data []byte) (*rawTable, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	t := &rawTable{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if t.header == nil {
			if isBlankRow(record) {
				continue
			}
			t.header = record
			continue
		}
		t.records = append(t.records, record)
	}
	return t, nil
}
