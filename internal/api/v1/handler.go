package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ravikumar1136/sailHeatPlan/internal/exporter"
	"github.com/ravikumar1136/sailHeatPlan/internal/importer"
	"github.com/ravikumar1136/sailHeatPlan/internal/service/heatplan"
	"github.com/ravikumar1136/sailHeatPlan/internal/service/store"
)

// Handler 炼钢计划 API 处理器
type Handler struct {
	service     *heatplan.Service
	coordinator *importer.Coordinator
	exporter    *exporter.Exporter
	downloads   *store.MemoryStore
	now         func() time.Time
}

// NewHandler 创建 API 处理器
func NewHandler(service *heatplan.Service, exp *exporter.Exporter, downloads *store.MemoryStore) *Handler {
	return &Handler{
		service:     service,
		coordinator: importer.NewCoordinator(service),
		exporter:    exp,
		downloads:   downloads,
		now:         time.Now,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 计划生成
	router.POST("/heat-plan", h.GenerateHeatPlan)
	router.POST("/generate-heat-plan", h.GenerateHeatPlan)
	router.POST("/heat-plan/stream", h.GenerateHeatPlanStream)

	// 下载
	router.POST("/download-heat-plan", h.DownloadHeatPlan)
	router.GET("/heat-plan/download/:token", h.DownloadByToken)
}
