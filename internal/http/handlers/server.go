package handlers

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khanhvo/retail-backoffice/internal/pos"
	"github.com/khanhvo/retail-backoffice/internal/receipt"
	"github.com/khanhvo/retail-backoffice/internal/redissvc"
	repo "github.com/khanhvo/retail-backoffice/internal/repo"
)

var (
	productRepo    repo.ProductRepository
	variantRepo    repo.VariantRepository
	inventoryRepo  repo.InventoryRepository
	warrantyRepo   repo.WarrantyRepository
	conversionRepo repo.ConversionRepository
	supplierRepo   repo.SupplierRepository
	orderRepo      repo.PurchaseOrderRepository
	saleRepo       repo.SaleRepository
	userRepo       repo.UserRepository
	importStore    repo.ImportStore
	posService     *pos.Service

	catalogCache *CatalogCache
	logger       = zap.NewNop()
	receiptOpts  = receipt.Options{Width: receipt.DefaultWidth}
	importDir    = "./data/imports"

	Rdb *redis.Client
	Ctx context.Context
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetVariantRepo(r repo.VariantRepository) {
	variantRepo = r
}

func SetInventoryRepo(r repo.InventoryRepository) {
	inventoryRepo = r
}

func SetWarrantyRepo(r repo.WarrantyRepository) {
	warrantyRepo = r
}

func SetConversionRepo(r repo.ConversionRepository) {
	conversionRepo = r
}

func SetSupplierRepo(r repo.SupplierRepository) {
	supplierRepo = r
}

func SetPurchaseOrderRepo(r repo.PurchaseOrderRepository) {
	orderRepo = r
}

func SetSaleRepo(r repo.SaleRepository) {
	saleRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetImportStore(s repo.ImportStore) {
	importStore = s
}

func SetPOSService(s *pos.Service) {
	posService = s
}

func SetRedisService(rs *redissvc.RedisService) {
	Rdb = rs.Rdb()
	Ctx = rs.Ctx()
	catalogCache = NewCatalogCache(rs.Rdb())
}

func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

func SetReceiptOptions(opts receipt.Options) {
	receiptOpts = opts
}

func SetImportDir(dir string) {
	if dir != "" {
		importDir = dir
	}
}
