package parser

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ravikumar1136/sailHeatPlan/internal/model"
	"github.com/ravikumar1136/sailHeatPlan/internal/normalizer"
)

func orderSchema() Schema {
	return OrderSchema(normalizer.Default().OrderFields())
}

func stockSchema() Schema {
	return StockSchema(normalizer.Default().StockFields())
}

func TestParse_CSV(t *testing.T) {
	t.Parallel()

	csvText := "\xef\xbb\xbfGrade, Wid ,b  qty,Customer\n" +
		"301L,1150,74,ACME\n" +
		"\n" +
		"\"204CU\",1250,\"1,200.5\",X\n" +
		"430,1000\n"

	sheet, err := NewParser().Parse("orders.csv", strings.NewReader(csvText), orderSchema())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sheet.Format != FormatCSV || sheet.FileID == "" {
		t.Fatalf("unexpected sheet meta: format=%s id=%q", sheet.Format, sheet.FileID)
	}
	if !sheet.Complete() {
		t.Fatalf("missing fields: %v", sheet.Recognition.MissingFields)
	}
	if sheet.Recognition.Type != model.SheetTypeOrders || sheet.Recognition.Score != 1 {
		t.Fatalf("unexpected recognition: %+v", sheet.Recognition)
	}
	if len(sheet.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(sheet.Rows))
	}

	// 表头漂移后仍以首选列名作为键
	first := sheet.Rows[0]
	if first["Grade"] != "301L" || first["Wid"] != "1150" || first["B Qty"] != "74" || first["Customer"] != "ACME" {
		t.Fatalf("unexpected first row: %v", first)
	}
	if sheet.Rows[1]["B Qty"] != "1,200.5" {
		t.Fatalf("quoted value lost: %v", sheet.Rows[1])
	}
	if v, ok := sheet.Rows[2]["B Qty"]; !ok || v != "" {
		t.Fatalf("short row should be padded: %v", sheet.Rows[2])
	}
	if sheet.Headers[1] != "Wid" {
		t.Fatalf("header not cleaned: %q", sheet.Headers[1])
	}
}

func TestParse_CSVMissingColumns(t *testing.T) {
	t.Parallel()

	sheet, err := NewParser().Parse("stock.csv", strings.NewReader("GRD,PKT\n304,P1\n"), stockSchema())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sheet.Complete() {
		t.Fatalf("expected missing WIDT")
	}
	if got := sheet.Recognition.MissingFields; len(got) != 1 || got[0] != "WIDT" {
		t.Fatalf("missing = %v", got)
	}
	if sheet.Recognition.Score != 0.5 {
		t.Fatalf("score = %v", sheet.Recognition.Score)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	p := NewParser()
	if _, err := p.Parse("orders.csv", strings.NewReader("  \n"), orderSchema()); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("want ErrEmptyFile, got %v", err)
	}
	if _, err := p.Parse("orders.xls", strings.NewReader("binary"), orderSchema()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("want ErrUnsupportedFormat, got %v", err)
	}
	if _, err := p.Parse("orders.xlsx", strings.NewReader("not a zip"), orderSchema()); err == nil {
		t.Fatalf("expected error for broken xlsx")
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		head []byte
		want Format
	}{
		{"a.xlsx", nil, FormatXLSX},
		{"A.XLSM", nil, FormatXLSX},
		{"a.csv", []byte("PK\x03\x04"), FormatCSV},
		{"upload", []byte("PK\x03\x04rest"), FormatXLSX},
		{"upload", []byte("Grade,Wid"), FormatCSV},
	}
	for _, tc := range cases {
		got, err := DetectFormat(tc.name, tc.head)
		if err != nil || got != tc.want {
			t.Fatalf("DetectFormat(%q) = %s, %v; want %s", tc.name, got, err, tc.want)
		}
	}
}

func buildWorkbook(t *testing.T, sheets map[string][][]any, order []string) []byte {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
		for r, cells := range sheets[name] {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			if err := f.SetSheetRow(name, cell, &cells); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParse_XLSXPicksMatchingSheet(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t, map[string][][]any{
		"Notes": {
			{"Prepared by", "Planning"},
		},
		"Stock": {
			{},
			{"GRD", "WIDT", "PKT"},
			{"304", 1250, "PK-1"},
			{"201LN", 1000, "PK-2"},
		},
	}, []string{"Notes", "Stock"})

	sheet, err := NewParser().Parse("stock_upload", bytes.NewReader(data), stockSchema())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sheet.Format != FormatXLSX || sheet.SheetName != "Stock" {
		t.Fatalf("picked sheet %q format %s", sheet.SheetName, sheet.Format)
	}
	if len(sheet.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(sheet.Rows))
	}
	if sheet.Rows[0]["WIDT"] != "1250" || sheet.Rows[1]["PKT"] != "PK-2" {
		t.Fatalf("unexpected rows: %v", sheet.Rows)
	}
}

func TestFieldMapper_AliasPriority(t *testing.T) {
	t.Parallel()

	fields := normalizer.FieldTable{
		normalizer.FieldWidth: {"Wid", "Width"},
		normalizer.FieldGrade: {"Grade"},
	}
	m := NewFieldMapper()
	mappings := m.MapColumns([]string{"Width", "Grade", "WID"}, fields)

	if mp, ok := mappings[2]; !ok || mp.Field != normalizer.FieldWidth || mp.Canonical != "Wid" {
		t.Fatalf("width should map to column 2: %+v", mappings)
	}
	if _, ok := mappings[0]; ok {
		t.Fatalf("lower priority alias should stay unmapped: %+v", mappings)
	}
	keys := m.RowKeys([]string{"Width", "Grade", "WID"}, mappings)
	if keys[0] != "Width" || keys[1] != "Grade" || keys[2] != "Wid" {
		t.Fatalf("keys = %v", keys)
	}
}

func TestNormalizeColumnName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		" B Qty ":     "bqty",
		"\ufeffGrade": "grade",
		"W I\tD\n":    "wid",
		"":            "",
	}
	for in, want := range cases {
		if got := NormalizeColumnName(in); got != want {
			t.Fatalf("NormalizeColumnName(%q) = %q, want %q", in, got, want)
		}
	}
}
