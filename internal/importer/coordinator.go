package importer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ravikumar1136/sailHeatPlan/internal/service/heatplan"
)

// 事件类型
const (
	EventStart     = "start"
	EventParse     = "parse"
	EventNormalize = "normalize"
	EventPlan      = "plan"
	EventDone      = "done"
	EventError     = "error"
)

// Coordinator 计划生成协调器，按阶段推送进度
type Coordinator struct {
	service *heatplan.Service
}

// NewCoordinator 创建协调器
func NewCoordinator(service *heatplan.Service) *Coordinator {
	return &Coordinator{service: service}
}

// RunOptions 运行选项
type RunOptions struct {
	Orders heatplan.Upload
	Stock  heatplan.Upload
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`           // start/parse/normalize/plan/done/error
	Message   string      `json:"message"`        // 事件消息
	Data      interface{} `json:"data,omitempty"` // 附加数据
	Err       error       `json:"-"`              // error 事件的原始错误
	Timestamp time.Time   `json:"timestamp"`      // 时间戳
}

// Run 执行计划生成，返回进度通道；done 事件的 Data 为 *heatplan.Report
func (c *Coordinator) Run(ctx context.Context, opts RunOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.run(ctx, opts, progressChan)
	}()

	return progressChan
}

func (c *Coordinator) run(ctx context.Context, opts RunOptions, progressChan chan ProgressEvent) {
	startTime := time.Now()

	c.sendProgress(ctx, progressChan, ProgressEvent{
		Type:    EventStart,
		Message: "开始生成炼钢计划",
		Data: map[string]string{
			"orders": opts.Orders.Filename,
			"stock":  opts.Stock.Filename,
		},
	})

	parsed, err := c.service.Parse(ctx, opts.Orders, opts.Stock)
	if err != nil {
		c.fail(ctx, progressChan, "解析文件失败", err)
		return
	}
	c.sendProgress(ctx, progressChan, ProgressEvent{
		Type:    EventParse,
		Message: fmt.Sprintf("已读取订单 %d 行，库存 %d 行", len(parsed.Orders.Rows), len(parsed.Stock.Rows)),
		Data: map[string]interface{}{
			"orders": parsed.Orders,
			"stock":  parsed.Stock,
		},
	})

	normalized := c.service.Normalize(parsed)
	c.sendProgress(ctx, progressChan, ProgressEvent{
		Type:    EventNormalize,
		Message: fmt.Sprintf("有效订单 %d 条，有效库存 %d 条", len(normalized.Orders), len(normalized.Stock)),
		Data: map[string]interface{}{
			"orderStats":    normalized.OrderStats,
			"stockStats":    normalized.StockStats,
			"totalQuantity": normalized.TotalOrders,
		},
	})

	report, err := c.service.Plan(ctx, normalized)
	if err != nil {
		c.fail(ctx, progressChan, "生成计划失败", err)
		return
	}
	report.Duration = time.Since(startTime)
	c.sendProgress(ctx, progressChan, ProgressEvent{
		Type:    EventPlan,
		Message: fmt.Sprintf("计划 %d 行，共 %d 炉", len(report.Result.HeatPlan), report.Result.TotalHeats),
		Data: map[string]interface{}{
			"status": report.Result.Status,
		},
	})

	c.sendProgress(ctx, progressChan, ProgressEvent{
		Type:    EventDone,
		Message: "生成完成",
		Data:    report,
	})
}

func (c *Coordinator) fail(ctx context.Context, progressChan chan ProgressEvent, message string, err error) {
	log.Printf("[coordinator] %s: %v", message, err)
	c.sendProgress(ctx, progressChan, ProgressEvent{
		Type:    EventError,
		Message: fmt.Sprintf("%s: %v", message, err),
		Err:     err,
	})
}

// sendProgress 发送进度事件；ctx 取消后丢弃
func (c *Coordinator) sendProgress(ctx context.Context, progressChan chan ProgressEvent, evt ProgressEvent) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	select {
	case progressChan <- evt:
	case <-ctx.Done():
	}
}
