package heatplan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ravikumar1136/sailHeatPlan/internal/config"
	"github.com/ravikumar1136/sailHeatPlan/internal/model"
	"github.com/ravikumar1136/sailHeatPlan/internal/normalizer"
	"github.com/ravikumar1136/sailHeatPlan/internal/parser"
	"github.com/ravikumar1136/sailHeatPlan/internal/planner"
)

// Upload 上传文件
type Upload struct {
	Filename string
	Reader   io.Reader
	Size     int64 // 未知时为 -1
}

// Empty 文件缺失或大小为 0
func (u Upload) Empty() bool {
	return u.Reader == nil || u.Size == 0
}

// Parsed 解析后的两张表
type Parsed struct {
	Orders *parser.Sheet
	Stock  *parser.Sheet
}

// Normalized 规范化后的记录与统计
type Normalized struct {
	Orders      []model.OrderRecord
	Stock       []model.StockRecord
	OrderStats  model.FileStats
	StockStats  model.FileStats
	TotalOrders decimal.Decimal // 有效订单总量
}

// Report 一次计划生成的结果
type Report struct {
	RunID       string          `json:"runId"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Duration    time.Duration   `json:"duration"`
	Result      planner.Result  `json:"result"`
	OrderStats  model.FileStats `json:"orderStats"`
	StockStats  model.FileStats `json:"stockStats"`
}

// Options 服务参数
type Options struct {
	Planning config.PlanningConfig
	Columns  config.ColumnsConfig
}

// Service 炼钢计划服务：解析 -> 规范化 -> 总量校验 -> 排产
type Service struct {
	parser     *parser.Parser
	normalizer *normalizer.Normalizer
	planner    *planner.Planner
	maxTotal   decimal.Decimal // 0 表示不限制
	now        func() time.Time
}

// NewService 创建服务
func NewService(opts Options) *Service {
	return &Service{
		parser:     parser.NewParser(),
		normalizer: normalizer.FromConfig(opts.Columns),
		planner:    planner.FromConfig(opts.Planning),
		maxTotal:   decimal.NewFromFloat(opts.Planning.MaxTotalQuantity),
		now:        time.Now,
	}
}

// FromConfig 按应用配置创建服务
func FromConfig(cfg *config.AppConfig) *Service {
	return NewService(Options{Planning: cfg.Planning, Columns: cfg.Columns})
}

// Planner 排产器
func (s *Service) Planner() *planner.Planner {
	return s.planner
}

// MaxTotalQuantity 订单总量上限，0 表示不限制
func (s *Service) MaxTotalQuantity() decimal.Decimal {
	return s.maxTotal
}

// Generate 完整执行一次计划生成
func (s *Service) Generate(ctx context.Context, orders, stock Upload) (*Report, error) {
	start := s.now()

	parsed, err := s.Parse(ctx, orders, stock)
	if err != nil {
		return nil, err
	}
	normalized := s.Normalize(parsed)
	report, err := s.Plan(ctx, normalized)
	if err != nil {
		return nil, err
	}
	report.Duration = s.now().Sub(start)
	return report, nil
}

// Parse 解析两个上传文件并校验必需列
func (s *Service) Parse(ctx context.Context, orders, stock Upload) (*Parsed, error) {
	if orders.Empty() || stock.Empty() {
		return nil, ErrMissingInput
	}

	orderSheet, err := s.parseUpload(ctx, "orders", orders, parser.OrderSchema(s.normalizer.OrderFields()))
	if err != nil {
		return nil, err
	}
	stockSheet, err := s.parseUpload(ctx, "stock", stock, parser.StockSchema(s.normalizer.StockFields()))
	if err != nil {
		return nil, err
	}
	return &Parsed{Orders: orderSheet, Stock: stockSheet}, nil
}

func (s *Service) parseUpload(ctx context.Context, role string, u Upload, schema parser.Schema) (*parser.Sheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sheet, err := s.parser.Parse(u.Filename, u.Reader, schema)
	if err != nil {
		if errors.Is(err, parser.ErrEmptyFile) {
			return nil, fmt.Errorf("%w: %s file %q is empty", ErrMissingInput, role, u.Filename)
		}
		return nil, fmt.Errorf("%w: %s file %q: %v", ErrUnreadableFile, role, u.Filename, err)
	}
	if !sheet.Complete() {
		return nil, &ColumnsError{
			Role:     role,
			Filename: u.Filename,
			Expected: schema.ExpectedColumns(),
			Missing:  sheet.Recognition.MissingFields,
		}
	}

	log.Printf("[heatplan] parsed %s file %q (%s, sheet=%q): %d rows", role, u.Filename, sheet.Format, sheet.SheetName, len(sheet.Rows))
	return sheet, nil
}

// Normalize 规范化记录，格式错误的行被丢弃并计入统计
func (s *Service) Normalize(parsed *Parsed) *Normalized {
	orders := s.normalizer.NormalizeOrders(parsed.Orders.Rows)
	stock := s.normalizer.NormalizeStock(parsed.Stock.Rows)

	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Quantity)
	}

	n := &Normalized{
		Orders:      orders,
		Stock:       stock,
		OrderStats:  statsOf(parsed.Orders, len(orders)),
		StockStats:  statsOf(parsed.Stock, len(stock)),
		TotalOrders: total,
	}
	if d := n.OrderStats.RowsDropped(); d > 0 {
		log.Printf("[heatplan] dropped %d malformed order rows", d)
	}
	if d := n.StockStats.RowsDropped(); d > 0 {
		log.Printf("[heatplan] dropped %d malformed stock rows", d)
	}
	return n
}

func statsOf(sheet *parser.Sheet, kept int) model.FileStats {
	return model.FileStats{
		Filename:  sheet.Filename,
		SheetName: sheet.SheetName,
		RowsRead:  len(sheet.Rows),
		RowsKept:  kept,
	}
}

// CheckLimit 校验订单总量
func (s *Service) CheckLimit(n *Normalized) error {
	if s.maxTotal.IsPositive() && n.TotalOrders.GreaterThan(s.maxTotal) {
		return fmt.Errorf("%w: %s > %s", ErrQuantityLimit, n.TotalOrders, s.maxTotal)
	}
	return nil
}

// Plan 校验总量后生成计划
func (s *Service) Plan(ctx context.Context, n *Normalized) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.CheckLimit(n); err != nil {
		return nil, err
	}

	result := s.planner.Generate(n.Orders, n.Stock)
	report := &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: s.now(),
		Result:      result,
		OrderStats:  n.OrderStats,
		StockStats:  n.StockStats,
	}

	log.Printf("[heatplan] run %s: status=%s rows=%d heats=%d qty=%s available=%d",
		report.RunID, result.Status, len(result.HeatPlan), result.TotalHeats, result.TotalQuantity, len(result.StockAvailability))
	return report, nil
}
