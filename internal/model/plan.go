package model

import "github.com/shopspring/decimal"

// HeatPlanRow 炼钢计划行：每个未被库存满足的 (钢种, 宽度) 一行
type HeatPlanRow struct {
	Grade      string          `json:"grade"`
	Width      int             `json:"width"`
	SlabWeight string          `json:"slabWeight"` // 预留，由下游人工填写
	HeatCount  int64           `json:"heatCount"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// StockAvailabilityRow 可由现有库存满足的订单
type StockAvailabilityRow struct {
	Grade  string `json:"grade"`
	Width  int    `json:"width"`
	Packet string `json:"packet"`
}

// PlanStatus 计划生成状态
type PlanStatus string

const (
	PlanStatusGenerated          PlanStatus = "generated"            // 需要排产
	PlanStatusNoProductionNeeded PlanStatus = "no_production_needed" // 全部订单由库存满足
	PlanStatusNoOrders           PlanStatus = "no_orders"            // 没有有效订单
)
