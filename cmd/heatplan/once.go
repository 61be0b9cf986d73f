package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ravikumar1136/sailHeatPlan/internal/config"
	"github.com/ravikumar1136/sailHeatPlan/internal/exporter"
	"github.com/ravikumar1136/sailHeatPlan/internal/render"
	"github.com/ravikumar1136/sailHeatPlan/internal/service/heatplan"
)

func openUpload(path string) (heatplan.Upload, func(), error) {
	if path == "" {
		return heatplan.Upload{}, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return heatplan.Upload{}, func() {}, err
	}
	size := int64(-1)
	if st, err := f.Stat(); err == nil {
		size = st.Size()
	}
	return heatplan.Upload{Filename: filepath.Base(path), Reader: f, Size: size}, func() { _ = f.Close() }, nil
}

// runOnce 命令行模式：生成一次计划并打印，可选写出文件
func runOnce(ctx context.Context, cfg *config.AppConfig, ordersPath, stockPath, outPath string, w io.Writer) error {
	orders, closeOrders, err := openUpload(ordersPath)
	if err != nil {
		return err
	}
	defer closeOrders()

	stock, closeStock, err := openUpload(stockPath)
	if err != nil {
		return err
	}
	defer closeStock()

	report, err := heatplan.FromConfig(cfg).Generate(ctx, orders, stock)
	if err != nil {
		return err
	}
	fmt.Fprint(w, render.Report(report))

	if outPath == "" {
		return nil
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	res := report.Result
	if strings.EqualFold(filepath.Ext(outPath), ".csv") {
		err = exporter.WriteCSV(out, res.HeatPlan)
	} else {
		exp := exporter.NewExporter(exporter.Options{
			SheetName:         cfg.Export.SheetName,
			AvailabilitySheet: cfg.Export.AvailabilitySheet,
		})
		err = exp.WriteXLSX(out, res.HeatPlan, res.StockAvailability)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Fprintf(w, "已写出 %s\n", outPath)
	return out.Close()
}
