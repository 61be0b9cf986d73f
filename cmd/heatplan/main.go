package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ravikumar1136/sailHeatPlan/internal/config"
	"github.com/ravikumar1136/sailHeatPlan/internal/server"
)

var (
	port       = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode    = flag.Bool("dev", false, "开发模式")
	configPath = flag.String("config", "", "配置文件路径 (默认为可执行文件同目录下的 config.toml)")
	ordersPath = flag.String("orders", "", "订单文件 (CSV/XLSX)，与 -stock 一起使用时直接生成计划后退出")
	stockPath  = flag.String("stock", "", "库存文件 (CSV/XLSX)")
	outPath    = flag.String("out", "", "计划输出文件 (.xlsx 或 .csv)")
)

func main() {
	flag.Parse()

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo(*configPath)
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}

	if *ordersPath != "" || *stockPath != "" {
		if err := runOnce(context.Background(), cfg, *ordersPath, *stockPath, *outPath, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "生成失败: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("==========================================")
	fmt.Println("  sailHeatPlan - 炼钢计划生成服务")
	fmt.Println("==========================================")

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("创建服务失败: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
	fmt.Println("按 Ctrl+C 停止服务...")

	if err := srv.Run(ctx, addr); err != nil {
		log.Fatalf("服务运行失败: %v", err)
	}
	fmt.Println("服务已关闭")
}
