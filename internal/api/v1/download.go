package v1

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ravikumar1136/sailHeatPlan/internal/exporter"
	"github.com/ravikumar1136/sailHeatPlan/internal/model"
)

// DownloadRequest 下载请求：前端回传的计划行
type DownloadRequest struct {
	Data []model.HeatPlanRow `json:"data"`
}

// DownloadHeatPlan 将计划行导出为 Excel（format=csv 时导出 CSV）
// POST /api/download-heat-plan
func (h *Handler) DownloadHeatPlan(c *gin.Context) {
	var req DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if len(req.Data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Heat plan data is required"})
		return
	}

	var buf bytes.Buffer
	now := h.now()

	if c.Query("format") == "csv" {
		if err := exporter.WriteCSV(&buf, req.Data); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		filename := exporter.Filename("csv", now)
		c.Header("Content-Disposition", exporter.ContentDisposition(filename))
		c.Data(http.StatusOK, csvType, buf.Bytes())
		return
	}

	if err := h.exporter.WriteXLSX(&buf, req.Data, nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	filename := exporter.Filename("xlsx", now)
	c.Header("Content-Disposition", exporter.ContentDisposition(filename))
	c.Data(http.StatusOK, xlsxType, buf.Bytes())
}

// DownloadByToken 下载生成时保存的 Excel 文件（一次性）
// GET /api/heat-plan/download/:token
func (h *Handler) DownloadByToken(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	item, ok := h.downloads.Take(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download link expired"})
		return
	}

	c.Header("Content-Disposition", exporter.ContentDisposition(item.Filename))
	c.Data(http.StatusOK, item.ContentType, item.Data)
}
