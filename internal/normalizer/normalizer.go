package normalizer

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ravikumar1136/sailHeatPlan/internal/config"
	"github.com/ravikumar1136/sailHeatPlan/internal/model"
)

// Normalizer 将原始行转换为强类型记录，格式不合法的行直接丢弃
type Normalizer struct {
	orders FieldTable
	stock  FieldTable
}

// New 创建规范化器
func New(orders, stock FieldTable) *Normalizer {
	return &Normalizer{orders: orders, stock: stock}
}

// FromConfig 按配置中的列名映射创建规范化器
func FromConfig(cols config.ColumnsConfig) *Normalizer {
	return New(OrderTable(cols.Order), StockTable(cols.Stock))
}

// Default 使用默认列名（Grade/Wid/B Qty，GRD/WIDT/PKT）
func Default() *Normalizer {
	return FromConfig(config.DefaultConfig().Columns)
}

// OrderFields 订单表字段映射
func (n *Normalizer) OrderFields() FieldTable {
	return n.orders
}

// StockFields 库存表字段映射
func (n *Normalizer) StockFields() FieldTable {
	return n.stock
}

// NormalizeOrders 规范化订单行
// 丢弃钢种为空、宽度 <= 0 或数量 <= 0 的行
func (n *Normalizer) NormalizeOrders(rows []model.RawRow) []model.OrderRecord {
	orders := make([]model.OrderRecord, 0, len(rows))
	for _, row := range rows {
		order := model.OrderRecord{
			Grade:    strings.TrimSpace(n.orders.lookup(row, FieldGrade)),
			Width:    ParseWidth(n.orders.lookup(row, FieldWidth)),
			Quantity: ParseQuantity(n.orders.lookup(row, FieldQuantity)),
		}
		if order.Grade == "" || order.Width <= 0 || !order.Quantity.IsPositive() {
			continue
		}
		orders = append(orders, order)
	}
	return orders
}

// NormalizeStock 规范化库存行
// 丢弃钢种为空或宽度 <= 0 的行
func (n *Normalizer) NormalizeStock(rows []model.RawRow) []model.StockRecord {
	stock := make([]model.StockRecord, 0, len(rows))
	for _, row := range rows {
		item := model.StockRecord{
			Grade:  strings.TrimSpace(n.stock.lookup(row, FieldGrade)),
			Width:  ParseWidth(n.stock.lookup(row, FieldWidth)),
			Packet: strings.TrimSpace(n.stock.lookup(row, FieldPacket)),
		}
		if item.Grade == "" || item.Width <= 0 {
			continue
		}
		stock = append(stock, item)
	}
	return stock
}

// ParseWidth 解析宽度（毫米）
// 接受整数或小数部分为 0 的数字（Excel 数值单元格常见 "1250.0"），其余返回 0
func ParseWidth(s string) int {
	s = cleanNumber(s)
	if s == "" {
		return 0
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}

// ParseQuantity 解析订单数量，无法解析时返回 0
func ParseQuantity(s string) decimal.Decimal {
	s = cleanNumber(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// cleanNumber 去除首尾空格和千分位分隔符
func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, ",", "")
}
