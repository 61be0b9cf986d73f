package normalizer

import "github.com/ravikumar1136/sailHeatPlan/internal/config"

// Field 规范化记录的目标字段
type Field string

const (
	FieldGrade    Field = "grade"
	FieldWidth    Field = "width"
	FieldQuantity Field = "quantity"
	FieldPacket   Field = "packet"
)

// FieldTable 字段映射表：目标字段 -> 可识别的列名（按顺序尝试）
type FieldTable map[Field][]string

// OrderTable 订单表字段映射
func OrderTable(cols config.OrderColumns) FieldTable {
	return FieldTable{
		FieldGrade:    cols.Grade,
		FieldWidth:    cols.Width,
		FieldQuantity: cols.Quantity,
	}
}

// StockTable 库存表字段映射
func StockTable(cols config.StockColumns) FieldTable {
	return FieldTable{
		FieldGrade:  cols.Grade,
		FieldWidth:  cols.Width,
		FieldPacket: cols.Packet,
	}
}

// Canonical 返回字段的首选列名，找不到时返回空串
func (t FieldTable) Canonical(f Field) string {
	if aliases := t[f]; len(aliases) > 0 {
		return aliases[0]
	}
	return ""
}

// lookup 取行中第一个存在的别名列的值
func (t FieldTable) lookup(row map[string]string, f Field) string {
	for _, name := range t[f] {
		if v, ok := row[name]; ok {
			return v
		}
	}
	return ""
}
