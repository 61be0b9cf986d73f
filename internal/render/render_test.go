package render

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ravikumar1136/sailHeatPlan/internal/model"
	"github.com/ravikumar1136/sailHeatPlan/internal/planner"
	"github.com/ravikumar1136/sailHeatPlan/internal/service/heatplan"
)

func TestHeatPlan_ContainsRows(t *testing.T) {
	t.Parallel()

	out := HeatPlan([]model.HeatPlanRow{
		{Grade: "301L", Width: 1150, HeatCount: 2, Quantity: decimal.RequireFromString("70")},
	})
	for _, want := range []string{"Grade", "NO OF HEATS", "301L", "1150", "70"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReport_NoProductionNeeded(t *testing.T) {
	t.Parallel()

	out := Report(&heatplan.Report{
		Result: planner.Result{
			Status:            model.PlanStatusNoProductionNeeded,
			HeatPlan:          []model.HeatPlanRow{},
			StockAvailability: []model.StockAvailabilityRow{{Grade: "304", Width: 1250, Packet: "PK-1"}},
		},
		OrderStats: model.FileStats{RowsRead: 2, RowsKept: 1},
	})
	if !strings.Contains(out, "No production needed") {
		t.Fatalf("missing no production note:\n%s", out)
	}
	if !strings.Contains(out, "PK-1") || !strings.Contains(out, "Stock Availability") {
		t.Fatalf("missing availability table:\n%s", out)
	}
	if !strings.Contains(out, "orders: 2 read, 1 dropped") {
		t.Fatalf("missing stats:\n%s", out)
	}
}
