package model

import "github.com/shopspring/decimal"

// RawRow 解析后的原始行（列名 -> 单元格文本）
type RawRow map[string]string

// MatchKey 订单与库存的匹配键（钢种 + 宽度）
type MatchKey struct {
	Grade string
	Width int
}

// OrderRecord 规范化后的订单明细
type OrderRecord struct {
	Grade    string          `json:"grade"`
	Width    int             `json:"width"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Key 返回订单的匹配键
func (o OrderRecord) Key() MatchKey {
	return MatchKey{Grade: o.Grade, Width: o.Width}
}

// StockRecord 规范化后的库存记录，仅按存在性匹配，不跟踪数量
type StockRecord struct {
	Grade  string `json:"grade"`
	Width  int    `json:"width"`
	Packet string `json:"packet"`
}

// Key 返回库存的匹配键
func (s StockRecord) Key() MatchKey {
	return MatchKey{Grade: s.Grade, Width: s.Width}
}
