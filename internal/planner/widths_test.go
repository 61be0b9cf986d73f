package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ravikumar1136/sailHeatPlan/internal/config"
	"github.com/ravikumar1136/sailHeatPlan/internal/model"
)

func TestSlabWidths_HeatWidth(t *testing.T) {
	t.Parallel()

	w := DefaultSlabWidths()
	cases := []struct {
		grade string
		width int
		want  int
	}{
		{"304", 600, 800},   // 低于下限
		{"304", 1000, 1050}, // 精确命中
		{"304", 1010, 1050}, // 向上取下一档
		{"304", 1240, 1275},
		{"304", 1400, 1275}, // 超出最大档
		{"201", 1250, 1295}, // 钢种专用
		{"201", 1000, 1050},
		{"201LN", 1250, 1275},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, w.HeatWidth(tc.grade, tc.width), "%s@%d", tc.grade, tc.width)
	}

	require.Equal(t, 1295, w.StockWidth("201", 1250))
	require.Equal(t, 1250, w.StockWidth("304", 1250))
}

func TestSlabWidths_EmptyTable(t *testing.T) {
	t.Parallel()

	w := NewSlabWidths(0, 0, map[int]int{}, nil)
	require.Equal(t, 1234, w.HeatWidth("A", 1234))
	require.Equal(t, 1234, w.StockWidth("A", 1234))
}

func TestFromConfig_WidthMapping(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig().Planning
	cfg.WidthMapping = true
	p := FromConfig(cfg)

	orders := []model.OrderRecord{
		order("301L", 1000, "30"),
		order("301L", 1020, "40"), // 与 1000 同归并到 1050
		order("201", 1250, "5"),   // 在库存中按 1295 查找
	}
	stock := []model.StockRecord{stockAt("201", 1295, "PK")}

	res := p.Generate(orders, stock)
	requireRows(t, []model.HeatPlanRow{row("301L", 1050, 2, "70")}, res.HeatPlan)
	require.Equal(t, []model.StockAvailabilityRow{{Grade: "201", Width: 1295, Packet: "PK"}}, res.StockAvailability)

	// 关闭映射时按原宽度分组
	requireRows(t, []model.HeatPlanRow{
		row("301L", 1000, 1, "30"),
		row("301L", 1020, 1, "40"),
		row("201", 1250, 1, "5"),
	}, FromConfig(config.DefaultConfig().Planning).GenerateHeatPlan(orders, stock))
}
