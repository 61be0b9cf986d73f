package planner

import "sort"

// WidthMapper 订单宽度到计划宽度 / 库存查找宽度的映射
type WidthMapper interface {
	HeatWidth(grade string, width int) int
	StockWidth(grade string, width int) int
}

// IdentityWidths 不做映射
type IdentityWidths struct{}

func (IdentityWidths) HeatWidth(_ string, width int) int  { return width }
func (IdentityWidths) StockWidth(_ string, width int) int { return width }

// SlabWidths 按板坯宽度表把订单宽度归并到可浇铸宽度
type SlabWidths struct {
	MinWidth      int                  // 小于该宽度统一按 Fallback 排产
	Fallback      int
	Table         map[int]int          // 订单宽度 -> 板坯宽度
	GradeOverride map[SlabOverride]int
	sorted        []int
}

// SlabOverride 特定钢种、宽度的专用板坯宽度
type SlabOverride struct {
	Grade string
	Width int
}

// DefaultSlabWidths 现场使用的板坯宽度表
func DefaultSlabWidths() *SlabWidths {
	return NewSlabWidths(650, 800, map[int]int{
		700:  735,
		750:  775,
		800:  835,
		810:  835,
		890:  935,
		1000: 1050,
		1020: 1050,
		1025: 1050,
		1100: 1125,
		1150: 1170,
		1200: 1225,
		1230: 1265,
		1250: 1275,
		1255: 1275,
	}, map[SlabOverride]int{
		{Grade: "201", Width: 1250}: 1295,
	})
}

// NewSlabWidths 创建宽度表
func NewSlabWidths(minWidth, fallback int, table map[int]int, overrides map[SlabOverride]int) *SlabWidths {
	sorted := make([]int, 0, len(table))
	for w := range table {
		sorted = append(sorted, w)
	}
	sort.Ints(sorted)
	return &SlabWidths{
		MinWidth:      minWidth,
		Fallback:      fallback,
		Table:         table,
		GradeOverride: overrides,
		sorted:        sorted,
	}
}

// HeatWidth 计划宽度：窄于下限取 Fallback；命中钢种专用宽度；精确命中；否则向上取下一档，超出取最大档
func (s *SlabWidths) HeatWidth(grade string, width int) int {
	if width < s.MinWidth {
		return s.Fallback
	}
	if w, ok := s.GradeOverride[SlabOverride{Grade: grade, Width: width}]; ok {
		return w
	}
	if w, ok := s.Table[width]; ok {
		return w
	}
	if len(s.sorted) == 0 {
		return width
	}
	i := sort.SearchInts(s.sorted, width+1)
	if i < len(s.sorted) {
		return s.Table[s.sorted[i]]
	}
	return s.Table[s.sorted[len(s.sorted)-1]]
}

// StockWidth 库存查找宽度：仅钢种专用宽度需要替换
func (s *SlabWidths) StockWidth(grade string, width int) int {
	if w, ok := s.GradeOverride[SlabOverride{Grade: grade, Width: width}]; ok {
		return w
	}
	return width
}
