// Command importcsv loads a storefront spreadsheet export into the catalog
// from the command line, without going through the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/khanhvo/retail-backoffice/internal/config"
	"github.com/khanhvo/retail-backoffice/internal/db"
	"github.com/khanhvo/retail-backoffice/internal/importer"
	"github.com/khanhvo/retail-backoffice/internal/repo"
)

func main() {
	var (
		file     = flag.String("file", "", "path to the CSV or JSON export (required)")
		format   = flag.String("format", "", "file format: csv or json (default: by extension)")
		encoding = flag.String("encoding", "", "input encoding: utf-8 or windows-1258")
		dryRun   = flag.Bool("dry-run", false, "parse and group only; do not touch the database")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer logger.Sync()

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatal("could not open import file", zap.Error(err))
	}
	defer f.Close()

	var sheet importer.Sheet
	switch resolveFormat(*format, *file) {
	case "json":
		sheet, err = importer.ReadJSON(f)
	default:
		if strings.EqualFold(*encoding, "windows-1258") {
			sheet, err = importer.ReadCSVWindows1258(f)
		} else {
			sheet, err = importer.ReadCSV(f)
		}
	}
	if err != nil {
		logger.Fatal("could not parse import file", zap.Error(err))
	}
	for _, h := range sheet.Unknown {
		logger.Warn("ignoring unknown import column", zap.String("header", h))
	}

	rows := importer.NormalizeAll(sheet)

	if *dryRun {
		groups := importer.GroupRows(rows, logger)
		variants := 0
		for _, g := range groups {
			variants += len(g.Rows)
		}
		fmt.Printf("dry run: %d rows, %d products, %d variant rows\n", len(rows), len(groups), variants)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("could not load configuration", zap.Error(err))
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	defer database.Close()

	executor := importer.NewExecutor(repo.NewPostgresImportStore(database), logger)
	result, runErr := executor.Run(context.Background(), rows)

	summary := importer.Summary{
		Time:    time.Now(),
		File:    filepath.Base(*file),
		Rows:    len(rows),
		Headers: len(sheet.Headers),
		Result:  result,
		Err:     runErr,
	}
	if err := importer.AppendSummary(cfg.ImportLog, summary); err != nil {
		logger.Warn("could not append import log", zap.Error(err))
	}

	if runErr != nil {
		logger.Fatal("import failed", zap.Error(runErr))
	}
	fmt.Printf("imported %d products, %d variants, %d conversions (%d rows skipped)\n",
		result.Products, result.Variants, result.Conversions, result.SkippedRows)
}

func resolveFormat(explicit, filename string) string {
	if explicit != "" {
		return strings.ToLower(explicit)
	}
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return "json"
	}
	return "csv"
}
