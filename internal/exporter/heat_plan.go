package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ravikumar1136/sailHeatPlan/internal/model"
)

// HeatPlanHeaders 炼钢计划表头
var HeatPlanHeaders = []string{"Grade", "Width (mm)", "Slab wt (t)", "NO OF HEATS", "QTY"}

// AvailabilityHeaders 库存可用清单表头
var AvailabilityHeaders = []string{"Grade", "Width (mm)", "PKT"}

// Options 导出选项
type Options struct {
	SheetName         string
	AvailabilitySheet string
}

// Exporter 炼钢计划导出器
type Exporter struct {
	opts Options
}

// NewExporter 创建导出器，未设置的表名使用默认值
func NewExporter(opts Options) *Exporter {
	if opts.SheetName == "" {
		opts.SheetName = "Heat Plan"
	}
	if opts.AvailabilitySheet == "" {
		opts.AvailabilitySheet = "Stock Availability"
	}
	return &Exporter{opts: opts}
}

// Workbook 生成工作簿；availability 为空时不创建库存表
// 调用方负责 Close
func (e *Exporter) Workbook(rows []model.HeatPlanRow, availability []model.StockAvailabilityRow) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := e.opts.SheetName
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	// 表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D7E4BC"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeHeader(f, sheetName, HeatPlanHeaders, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}
	for i, r := range rows {
		cells := []any{r.Grade, r.Width, r.SlabWeight, r.HeatCount, r.Quantity.InexactFloat64()}
		if err := writeRow(f, sheetName, i+2, cells); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	_ = f.SetColWidth(sheetName, "A", "A", 15)
	_ = f.SetColWidth(sheetName, "B", "E", 12)

	if len(availability) > 0 {
		name := e.opts.AvailabilitySheet
		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
		if err := writeHeader(f, name, AvailabilityHeaders, headerStyle); err != nil {
			_ = f.Close()
			return nil, err
		}
		for i, r := range availability {
			if err := writeRow(f, name, i+2, []any{r.Grade, r.Width, r.Packet}); err != nil {
				_ = f.Close()
				return nil, err
			}
		}
		_ = f.SetColWidth(name, "A", "A", 15)
		_ = f.SetColWidth(name, "B", "C", 12)
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WriteXLSX 生成工作簿并写入 w
func (e *Exporter) WriteXLSX(w io.Writer, rows []model.HeatPlanRow, availability []model.StockAvailabilityRow) error {
	f, err := e.Workbook(rows, availability)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := writeRow(f, sheet, 1, cells); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// WriteCSV 以 CSV 输出炼钢计划
func WriteCSV(w io.Writer, rows []model.HeatPlanRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(HeatPlanHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Grade,
			strconv.Itoa(r.Width),
			r.SlabWeight,
			strconv.FormatInt(r.HeatCount, 10),
			r.Quantity.String(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename 下载文件名：heat_plan_YYYYMMDD_HHMMSS.<ext>
func Filename(ext string, now time.Time) string {
	return fmt.Sprintf("heat_plan_%s.%s", now.Format("20060102_150405"), ext)
}

// ContentDisposition 附件下载响应头
func ContentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", filename, url.PathEscape(filename))
}
