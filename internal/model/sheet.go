package model

// SheetType 上传文件的数据类型
type SheetType string

const (
	SheetTypeUnknown SheetType = "unknown"
	SheetTypeOrders  SheetType = "orders" // 订单表
	SheetTypeStock   SheetType = "stock"  // 库存表
)

// SheetRecognition 单个 sheet 的识别结果
type SheetRecognition struct {
	SheetName     string    `json:"sheetName"`
	Type          SheetType `json:"type"`
	Score         float64   `json:"score"`
	MissingFields []string  `json:"missingFields"`
}
