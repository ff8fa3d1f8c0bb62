package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/NPrawn/food-classifier/internal/importer"
)

func main() {
	csvPath := flag.String("csv", "", "path to the MFDS nutrition CSV (required)")
	dataDir := flag.String("data", "data", "directory holding class_names_en.json and class_names_ko.json")
	out := flag.String("out", "", "output path (default <data>/nutrition.json)")
	cp949 := flag.Bool("cp949", false, "decode the CSV from CP949/EUC-KR instead of UTF-8")
	flag.Parse()

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "usage: importer -csv <path> [-data <dir>] [-out <path>] [-cp949]")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(*dataDir, "nutrition.json")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("building nutrition table", "csv", *csvPath, "out", *out)

	report, err := importer.Build(
		*csvPath,
		filepath.Join(*dataDir, "class_names_en.json"),
		filepath.Join(*dataDir, "class_names_ko.json"),
		*out,
		*cp949,
	)
	if err != nil {
		slog.Error("build failed", "error", err)
		os.Exit(1)
	}

	slog.Info("build complete",
		"classes", report.Classes,
		"matched", report.Matched,
		"missing", len(report.Missing),
		"build_time", report.BuildTime,
	)

	if len(report.Missing) > 0 {
		fmt.Println("Classes without an automatic match (review manually):")
		for _, mc := range report.Missing {
			fmt.Printf("  - %s / %s\n", mc.EnName, mc.KoName)
		}
	}
}
