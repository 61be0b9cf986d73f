package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Service          string `json:"service"`
	BatchCapacity    string `json:"batchCapacity"`    // 单炉容量
	MaxTotalQuantity string `json:"maxTotalQuantity"` // 订单总量上限，0 表示不限制
	DownloadTTL      string `json:"downloadTtl"`      // 下载链接有效期
	PendingDownloads int    `json:"pendingDownloads"` // 未领取的下载
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Service:          "sailHeatPlan",
		BatchCapacity:    h.service.Planner().Capacity().String(),
		MaxTotalQuantity: h.service.MaxTotalQuantity().String(),
		DownloadTTL:      h.downloads.TTL().String(),
		PendingDownloads: h.downloads.Len(),
	})
}
