package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ravikumar1136/sailHeatPlan/internal/exporter"
	"github.com/ravikumar1136/sailHeatPlan/internal/model"
	"github.com/ravikumar1136/sailHeatPlan/internal/service/heatplan"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

func newTable(headers []string, rows [][]string, numeric map[int]bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case numeric[col]:
				return numberStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}

// HeatPlan 炼钢计划表
func HeatPlan(rows []model.HeatPlanRow) string {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			r.Grade,
			strconv.Itoa(r.Width),
			r.SlabWeight,
			strconv.FormatInt(r.HeatCount, 10),
			r.Quantity.String(),
		})
	}
	return newTable(exporter.HeatPlanHeaders, data, map[int]bool{1: true, 3: true, 4: true})
}

// StockAvailability 库存可用清单
func StockAvailability(rows []model.StockAvailabilityRow) string {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{r.Grade, strconv.Itoa(r.Width), r.Packet})
	}
	return newTable(exporter.AvailabilityHeaders, data, map[int]bool{1: true})
}

// Report 一次运行的完整终端输出
func Report(report *heatplan.Report) string {
	res := report.Result
	var b strings.Builder

	b.WriteString(titleStyle.Render("Heat Plan"))
	b.WriteString("\n")

	switch res.Status {
	case model.PlanStatusNoOrders:
		b.WriteString(noteStyle.Render("No valid orders found."))
		b.WriteString("\n")
	case model.PlanStatusNoProductionNeeded:
		b.WriteString(noteStyle.Render("No production needed: all orders can be fulfilled from stock."))
		b.WriteString("\n")
	default:
		b.WriteString(HeatPlan(res.HeatPlan))
		b.WriteString("\n")
		b.WriteString(noteStyle.Render(fmt.Sprintf("%d rows, %d heats, total quantity %s", len(res.HeatPlan), res.TotalHeats, res.TotalQuantity)))
		b.WriteString("\n")
	}

	if len(res.StockAvailability) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Stock Availability"))
		b.WriteString("\n")
		b.WriteString(StockAvailability(res.StockAvailability))
		b.WriteString("\n")
	}

	b.WriteString(noteStyle.Render(fmt.Sprintf("orders: %d read, %d dropped; stock: %d read, %d dropped",
		report.OrderStats.RowsRead, report.OrderStats.RowsDropped(),
		report.StockStats.RowsRead, report.StockStats.RowsDropped())))
	b.WriteString("\n")
	return b.String()
}
