package main

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/khanhvo/retail-backoffice/docs"
	"github.com/khanhvo/retail-backoffice/internal/auth"
	"github.com/khanhvo/retail-backoffice/internal/config"
	"github.com/khanhvo/retail-backoffice/internal/db"
	apphttp "github.com/khanhvo/retail-backoffice/internal/http"
	"github.com/khanhvo/retail-backoffice/internal/http/handlers"
	rl "github.com/khanhvo/retail-backoffice/internal/http/rate_limiter"
	"github.com/khanhvo/retail-backoffice/internal/pos"
	"github.com/khanhvo/retail-backoffice/internal/receipt"
	"github.com/khanhvo/retail-backoffice/internal/redissvc"
	"github.com/khanhvo/retail-backoffice/internal/repo"
)

// @title Retail Back Office API
// @version 1.0
// @description REST API for the product catalog, bulk imports, purchasing and point of sale.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer logger.Sync()

	auth.SetSecret(cfg.JWTSecret)

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("could not connect to Redis", zap.Error(err))
	}
	defer rdb.Close()
	handlers.SetRedisService(redissvc.NewRedisService(rdb, ctx))

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	defer database.Close()

	variantRepo := repo.NewPostgresVariantRepository(database)
	saleRepo := repo.NewPostgresSaleRepository(database)

	handlers.SetLogger(logger)
	handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
	handlers.SetVariantRepo(variantRepo)
	handlers.SetInventoryRepo(repo.NewPostgresInventoryRepository(database))
	handlers.SetWarrantyRepo(repo.NewPostgresWarrantyRepository(database))
	handlers.SetConversionRepo(repo.NewPostgresConversionRepository(database))
	handlers.SetSupplierRepo(repo.NewPostgresSupplierRepository(database))
	handlers.SetPurchaseOrderRepo(repo.NewPostgresPurchaseOrderRepository(database))
	handlers.SetSaleRepo(saleRepo)
	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	handlers.SetImportStore(repo.NewPostgresImportStore(database))
	handlers.SetPOSService(pos.NewService(variantRepo, saleRepo, logger))
	handlers.SetImportDir(cfg.ImportDir)
	handlers.SetReceiptOptions(receipt.Options{
		Width:     cfg.ReceiptWidth,
		StoreName: cfg.StoreName,
	})

	go rl.StartVisitorCleanupLoop()
	go handlers.StartImportWorker(ctx)

	r := apphttp.NewRouter()
	logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
