package planner

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ravikumar1136/sailHeatPlan/internal/config"
	"github.com/ravikumar1136/sailHeatPlan/internal/model"
)

// Options 排产参数
type Options struct {
	BatchCapacity int         // 单炉容量，<= 0 时使用默认值 60
	Widths        WidthMapper // 宽度映射，nil 表示按订单宽度原样匹配
}

// Planner 炼钢计划生成器
// 无内部可变状态，可在多个 goroutine 中并发使用
type Planner struct {
	capacity decimal.Decimal
	widths   WidthMapper
}

// New 创建计划生成器
func New(opts Options) *Planner {
	capacity := opts.BatchCapacity
	if capacity <= 0 {
		capacity = config.DefaultBatchCapacity
	}
	widths := opts.Widths
	if widths == nil {
		widths = IdentityWidths{}
	}
	return &Planner{
		capacity: decimal.NewFromInt(int64(capacity)),
		widths:   widths,
	}
}

// Default 默认容量 60、不做宽度映射
func Default() *Planner {
	return New(Options{})
}

// FromConfig 按配置创建计划生成器
func FromConfig(cfg config.PlanningConfig) *Planner {
	opts := Options{BatchCapacity: cfg.BatchCapacity}
	if cfg.WidthMapping {
		opts.Widths = DefaultSlabWidths()
	}
	return New(opts)
}

// Capacity 单炉容量
func (p *Planner) Capacity() decimal.Decimal {
	return p.capacity
}

// Partition 订单划分结果
type Partition struct {
	Satisfied   []model.OrderRecord // 库存可满足
	Unsatisfied []model.OrderRecord // 需要排产
}

// Result 计划生成结果
type Result struct {
	Status            model.PlanStatus             `json:"status"`
	HeatPlan          []model.HeatPlanRow          `json:"heatPlan"`
	StockAvailability []model.StockAvailabilityRow `json:"stockAvailability"`
	TotalQuantity     decimal.Decimal              `json:"totalQuantity"`
	TotalHeats        int64                        `json:"totalHeats"`
}

// NoProductionNeeded 有订单但全部由库存满足
func (r Result) NoProductionNeeded() bool {
	return r.Status == model.PlanStatusNoProductionNeeded
}

// stockIndex 库存匹配键 -> 按库存顺序排列的包号
type stockIndex map[model.MatchKey][]string

func buildIndex(stock []model.StockRecord) stockIndex {
	idx := make(stockIndex, len(stock))
	for _, s := range stock {
		k := s.Key()
		idx[k] = append(idx[k], s.Packet)
	}
	return idx
}

func (idx stockIndex) has(k model.MatchKey) bool {
	_, ok := idx[k]
	return ok
}

// stockKey 订单在库存中查找时使用的匹配键
func (p *Planner) stockKey(o model.OrderRecord) model.MatchKey {
	return model.MatchKey{Grade: o.Grade, Width: p.widths.StockWidth(o.Grade, o.Width)}
}

// Partition 按 (钢种, 宽度) 是否存在于库存中划分订单，保持输入顺序
func (p *Planner) Partition(orders []model.OrderRecord, stock []model.StockRecord) Partition {
	return p.partition(orders, buildIndex(stock))
}

func (p *Planner) partition(orders []model.OrderRecord, idx stockIndex) Partition {
	var part Partition
	for _, o := range orders {
		if idx.has(p.stockKey(o)) {
			part.Satisfied = append(part.Satisfied, o)
		} else {
			part.Unsatisfied = append(part.Unsatisfied, o)
		}
	}
	return part
}

// GenerateHeatPlan 生成炼钢计划
// 未被库存满足的订单按匹配键分组（保持首次出现顺序），数量求和后换算炉数
func (p *Planner) GenerateHeatPlan(orders []model.OrderRecord, stock []model.StockRecord) []model.HeatPlanRow {
	return p.heatPlan(p.Partition(orders, stock).Unsatisfied)
}

// GenerateStockAvailability 列出可由库存满足的订单及分配的包号
func (p *Planner) GenerateStockAvailability(orders []model.OrderRecord, stock []model.StockRecord) []model.StockAvailabilityRow {
	idx := buildIndex(stock)
	return p.availability(p.partition(orders, idx).Satisfied, idx)
}

// Generate 一次划分，同时产出炼钢计划与库存可用清单
func (p *Planner) Generate(orders []model.OrderRecord, stock []model.StockRecord) Result {
	idx := buildIndex(stock)
	part := p.partition(orders, idx)

	result := Result{
		HeatPlan:          p.heatPlan(part.Unsatisfied),
		StockAvailability: p.availability(part.Satisfied, idx),
		TotalQuantity:     decimal.Zero,
	}
	for _, row := range result.HeatPlan {
		result.TotalQuantity = result.TotalQuantity.Add(row.Quantity)
		result.TotalHeats += row.HeatCount
	}

	switch {
	case len(orders) == 0:
		result.Status = model.PlanStatusNoOrders
	case len(result.HeatPlan) == 0:
		result.Status = model.PlanStatusNoProductionNeeded
	default:
		result.Status = model.PlanStatusGenerated
	}
	return result
}

func (p *Planner) heatPlan(unsatisfied []model.OrderRecord) []model.HeatPlanRow {
	keys := make([]model.MatchKey, 0)
	sums := make(map[model.MatchKey]decimal.Decimal)

	for _, o := range unsatisfied {
		k := model.MatchKey{Grade: o.Grade, Width: p.widths.HeatWidth(o.Grade, o.Width)}
		sum, seen := sums[k]
		if !seen {
			keys = append(keys, k)
			sum = decimal.Zero
		}
		sums[k] = sum.Add(o.Quantity)
	}

	rows := make([]model.HeatPlanRow, 0, len(keys))
	for _, k := range keys {
		qty := sums[k]
		rows = append(rows, model.HeatPlanRow{
			Grade:      k.Grade,
			Width:      k.Width,
			SlabWeight: "",
			HeatCount:  HeatCount(qty, p.capacity),
			Quantity:   qty,
		})
	}
	return rows
}

// availability 每个满足的订单一行；同键的包号按库存顺序依次分配，用完后包号为空
func (p *Planner) availability(satisfied []model.OrderRecord, idx stockIndex) []model.StockAvailabilityRow {
	used := make(map[model.MatchKey]int)
	rows := make([]model.StockAvailabilityRow, 0, len(satisfied))

	for _, o := range satisfied {
		k := p.stockKey(o)
		packets := idx[k]
		packet := ""
		if n := used[k]; n < len(packets) {
			packet = packets[n]
			used[k] = n + 1
		}
		rows = append(rows, model.StockAvailabilityRow{
			Grade:  k.Grade,
			Width:  k.Width,
			Packet: packet,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Grade != b.Grade {
			return a.Grade < b.Grade
		}
		if a.Width != b.Width {
			return a.Width < b.Width
		}
		return a.Packet < b.Packet
	})
	return rows
}

// HeatCount 炉数 = ceil(quantity / capacity)，有余数即多一炉
func HeatCount(quantity, capacity decimal.Decimal) int64 {
	if !quantity.IsPositive() || !capacity.IsPositive() {
		return 0
	}
	q, r := quantity.QuoRem(capacity, 0)
	heats := q.IntPart()
	if r.IsPositive() {
		heats++
	}
	return heats
}
