package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultBatchCapacity 单炉容量
	DefaultBatchCapacity = 60
	// DefaultMaxTotalQuantity 单次生成允许的订单总量
	DefaultMaxTotalQuantity = 6000
)

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Planning PlanningConfig `toml:"planning"`
	Columns  ColumnsConfig  `toml:"columns"`
	Export   ExportConfig   `toml:"export"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// PlanningConfig 排产参数
type PlanningConfig struct {
	BatchCapacity    int     `toml:"batch_capacity"`
	MaxTotalQuantity float64 `toml:"max_total_quantity"` // 0 表示不限制
	WidthMapping     bool    `toml:"width_mapping"`      // 是否按板坯宽度表归并
}

// ColumnsConfig 列名映射表，每个字段按顺序尝试别名
type ColumnsConfig struct {
	Order OrderColumns `toml:"order"`
	Stock StockColumns `toml:"stock"`
}

// OrderColumns 订单表列名
type OrderColumns struct {
	Grade    []string `toml:"grade"`
	Width    []string `toml:"width"`
	Quantity []string `toml:"quantity"`
}

// StockColumns 库存表列名
type StockColumns struct {
	Grade  []string `toml:"grade"`
	Width  []string `toml:"width"`
	Packet []string `toml:"packet"`
}

// ExportConfig 导出配置
type ExportConfig struct {
	SheetName         string `toml:"sheet_name"`
	AvailabilitySheet string `toml:"availability_sheet"`
	DownloadTTL       string `toml:"download_ttl"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Planning: PlanningConfig{
			BatchCapacity:    DefaultBatchCapacity,
			MaxTotalQuantity: DefaultMaxTotalQuantity,
			WidthMapping:     false,
		},
		Columns: ColumnsConfig{
			Order: OrderColumns{
				Grade:    []string{"Grade"},
				Width:    []string{"Wid"},
				Quantity: []string{"B Qty"},
			},
			Stock: StockColumns{
				Grade:  []string{"GRD"},
				Width:  []string{"WIDT"},
				Packet: []string{"PKT"},
			},
		},
		Export: ExportConfig{
			SheetName:         "Heat Plan",
			AvailabilitySheet: "Stock Availability",
			DownloadTTL:       "10m",
		},
	}
}

// Validate 校验配置
func (c *AppConfig) Validate() error {
	if c.Planning.BatchCapacity <= 0 {
		return fmt.Errorf("planning.batch_capacity must be positive, got %d", c.Planning.BatchCapacity)
	}
	if c.Planning.MaxTotalQuantity < 0 {
		return fmt.Errorf("planning.max_total_quantity must not be negative, got %v", c.Planning.MaxTotalQuantity)
	}

	lists := map[string][]string{
		"columns.order.grade":    c.Columns.Order.Grade,
		"columns.order.width":    c.Columns.Order.Width,
		"columns.order.quantity": c.Columns.Order.Quantity,
		"columns.stock.grade":    c.Columns.Stock.Grade,
		"columns.stock.width":    c.Columns.Stock.Width,
	}
	for name, aliases := range lists {
		if len(aliases) == 0 {
			return fmt.Errorf("%s must list at least one column name", name)
		}
	}

	if _, err := c.DownloadTTL(); err != nil {
		return err
	}
	return nil
}

// DownloadTTL 导出下载链接有效期
func (c *AppConfig) DownloadTTL() (time.Duration, error) {
	if c.Export.DownloadTTL == "" {
		return 10 * time.Minute, nil
	}
	d, err := time.ParseDuration(c.Export.DownloadTTL)
	if err != nil {
		return 0, fmt.Errorf("export.download_ttl: %w", err)
	}
	if d <= 0 {
		return 0, errors.New("export.download_ttl must be positive")
	}
	return d, nil
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultPath 默认配置文件路径（可执行文件同目录下的 config.toml）
func DefaultPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo 从 config.toml 加载配置并返回元信息
// path 为空时使用 DefaultPath
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// 配置文件不存在，使用默认配置
			applyEnv(config)
			return config, info, config.Validate()
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, fmt.Errorf("parse %s: %w", path, err)
	}

	applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, info, err
	}

	return config, info, nil
}

// LoadConfig 从 config.toml 加载配置
func LoadConfig(path string) (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo(path)
	return config, err
}

// applyEnv 环境变量覆盖（用于 E2E / 本地运行）
func applyEnv(config *AppConfig) {
	if v := os.Getenv("HEATPLAN_BATCH_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Planning.BatchCapacity = n
		}
	}
}

// SaveConfig 保存配置到指定路径
func SaveConfig(config *AppConfig, path string) error {
	if path == "" {
		path = DefaultPath()
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
