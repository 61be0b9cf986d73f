package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ravikumar1136/sailHeatPlan/internal/exporter"
	"github.com/ravikumar1136/sailHeatPlan/internal/importer"
	"github.com/ravikumar1136/sailHeatPlan/internal/model"
	"github.com/ravikumar1136/sailHeatPlan/internal/service/heatplan"
	"github.com/ravikumar1136/sailHeatPlan/internal/service/store"
)

const (
	apiPrefix = "/api"
	xlsxType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvType   = "text/csv; charset=utf-8"
)

// PlanData 计划与库存可用清单
type PlanData struct {
	HeatPlan          []model.HeatPlanRow          `json:"heat_plan"`
	StockAvailability []model.StockAvailabilityRow `json:"stock_availability"`
}

// RunStats 上传文件统计
type RunStats struct {
	Orders model.FileStats `json:"orders"`
	Stock  model.FileStats `json:"stock"`
}

// GenerateResponse 计划生成响应
type GenerateResponse struct {
	RunID         string           `json:"runId"`
	Status        model.PlanStatus `json:"status"`
	Message       string           `json:"message,omitempty"`
	Data          PlanData         `json:"data"`
	TotalHeats    int64            `json:"totalHeats"`
	TotalQuantity decimal.Decimal  `json:"totalQuantity"`
	Stats         RunStats         `json:"stats"`
	DownloadURL   string           `json:"downloadUrl,omitempty"`
}

func statusMessage(status model.PlanStatus) string {
	switch status {
	case model.PlanStatusNoProductionNeeded:
		return "No production needed: all orders can be fulfilled from stock."
	case model.PlanStatusNoOrders:
		return "No valid orders found in the order file."
	default:
		return ""
	}
}

// uploads 读取 orderFile / stockFile，缺失的文件返回空 Upload
func uploads(c *gin.Context) (orders, stock heatplan.Upload, closeFn func(), err error) {
	var files []multipart.File
	closeFn = func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	open := func(field string) (heatplan.Upload, error) {
		fh, err := c.FormFile(field)
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return heatplan.Upload{}, nil
			}
			return heatplan.Upload{}, fmt.Errorf("%w: %v", heatplan.ErrMissingInput, err)
		}
		f, err := fh.Open()
		if err != nil {
			return heatplan.Upload{}, fmt.Errorf("%w: open %s: %v", heatplan.ErrUnreadableFile, fh.Filename, err)
		}
		files = append(files, f)
		return heatplan.Upload{Filename: fh.Filename, Reader: f, Size: fh.Size}, nil
	}

	if orders, err = open("orderFile"); err != nil {
		return orders, stock, closeFn, err
	}
	stock, err = open("stockFile")
	return orders, stock, closeFn, err
}

// GenerateHeatPlan 上传订单与库存文件，返回炼钢计划
// POST /api/heat-plan
func (h *Handler) GenerateHeatPlan(c *gin.Context) {
	orders, stock, closeFiles, err := uploads(c)
	defer closeFiles()
	if err != nil {
		abortWithError(c, err)
		return
	}

	report, err := h.service.Generate(c.Request.Context(), orders, stock)
	if err != nil {
		log.Printf("[api] generate heat plan failed: %v", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.buildResponse(report))
}

// GenerateHeatPlanStream 生成炼钢计划 (SSE 流式响应)
// POST /api/heat-plan/stream
func (h *Handler) GenerateHeatPlanStream(c *gin.Context) {
	orders, stock, closeFiles, err := uploads(c)
	defer closeFiles()
	if err != nil {
		abortWithError(c, err)
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming is not supported"})
		return
	}

	// 设置 SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	send := func(event importer.ProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	progressChan := h.coordinator.Run(c.Request.Context(), importer.RunOptions{Orders: orders, Stock: stock})
	for event := range progressChan {
		switch event.Type {
		case importer.EventDone:
			if report, ok := event.Data.(*heatplan.Report); ok {
				event.Data = h.buildResponse(report)
			}
		case importer.EventError:
			if event.Err != nil {
				status, message := errorStatus(event.Err)
				event.Data = gin.H{"status": status, "error": message}
			}
		}
		send(event)
	}
}

func (h *Handler) buildResponse(report *heatplan.Report) GenerateResponse {
	res := report.Result
	resp := GenerateResponse{
		RunID:   report.RunID,
		Status:  res.Status,
		Message: statusMessage(res.Status),
		Data: PlanData{
			HeatPlan:          res.HeatPlan,
			StockAvailability: res.StockAvailability,
		},
		TotalHeats:    res.TotalHeats,
		TotalQuantity: res.TotalQuantity,
		Stats:         RunStats{Orders: report.OrderStats, Stock: report.StockStats},
	}

	if len(res.HeatPlan) == 0 && len(res.StockAvailability) == 0 {
		return resp
	}

	var buf bytes.Buffer
	if err := h.exporter.WriteXLSX(&buf, res.HeatPlan, res.StockAvailability); err != nil {
		log.Printf("[api] run %s: build download failed: %v", report.RunID, err)
		return resp
	}
	token := h.downloads.Put(store.Download{
		RunID:       report.RunID,
		Filename:    exporter.Filename("xlsx", report.GeneratedAt),
		ContentType: xlsxType,
		Data:        buf.Bytes(),
	})
	resp.DownloadURL = fmt.Sprintf("%s/heat-plan/download/%s", apiPrefix, token)
	return resp
}
