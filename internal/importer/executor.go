package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/khanhvo/retail-backoffice/internal/models"
	"github.com/khanhvo/retail-backoffice/internal/repo"
)

// ErrDuplicateSKU aborts a run before any database mutation.
var ErrDuplicateSKU = errors.New("duplicate SKU in import set")

// productBatchSize bounds INSERT statement size, nothing more.
const productBatchSize = 100

// Result summarizes one import run.
type Result struct {
	Products    int      `json:"products"`
	Variants    int      `json:"variants"`
	Conversions int      `json:"conversions"`
	SkippedRows int      `json:"skipped_rows"`
	Warnings    []string `json:"warnings,omitempty"`
}

// Executor performs the replace-all bulk load. The delete of the existing
// catalog and every create run inside one transaction; a failed run leaves
// the previous catalog untouched.
type Executor struct {
	store repo.ImportStore
	log   *zap.Logger
}

func NewExecutor(store repo.ImportStore, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{store: store, log: logger}
}

// Run executes the import over normalized rows. Duplicate SKUs anywhere in
// the input abort the run before the transaction begins, including SKUs on
// rows the grouper drops.
func (e *Executor) Run(ctx context.Context, rows []Row) (Result, error) {
	var result Result

	if dup := findDuplicateSKU(rows); dup != "" {
		return result, fmt.Errorf("%w: %q", ErrDuplicateSKU, dup)
	}
	groups := GroupRows(rows, e.log)

	tx, err := e.store.Begin(ctx)
	if err != nil {
		return result, fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.DeleteCatalog(); err != nil {
		return result, fmt.Errorf("clear catalog: %w", err)
	}

	now := time.Now().Format(time.RFC3339)
	products := make([]models.Product, len(groups))
	for i, g := range groups {
		products[i] = models.Product{
			Name:        g.Name,
			ProductType: g.ProductType,
			Description: g.Description,
			Brand:       g.Brand,
			Tags:        g.Tags,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}
	for start := 0; start < len(products); start += productBatchSize {
		end := min(start+productBatchSize, len(products))
		if err := tx.CreateProducts(products[start:end]); err != nil {
			return result, fmt.Errorf("create product batch at %d: %w", start, err)
		}
	}
	result.Products = len(products)

	for _, g := range groups {
		productID, err := tx.ProductIDByName(g.Name)
		if err != nil {
			return result, fmt.Errorf("resolve product %q: %w", g.Name, err)
		}

		for _, row := range g.Rows {
			if row.SKU == "" || row.VariantName == "" {
				result.SkippedRows++
				warning := fmt.Sprintf("product %q: row missing SKU or variant name, skipped", g.Name)
				result.Warnings = append(result.Warnings, warning)
				e.log.Warn("skipping variant row",
					zap.String("product", g.Name),
					zap.String("sku", row.SKU),
					zap.String("variant", row.VariantName))
				continue
			}

			variantID, err := tx.CreateVariant(variantFromRow(productID, row))
			if err != nil {
				return result, fmt.Errorf("create variant %q: %w", row.SKU, err)
			}
			if err := tx.CreateInventory(inventoryFromRow(variantID, row)); err != nil {
				return result, fmt.Errorf("create inventory for %q: %w", row.SKU, err)
			}
			if err := tx.CreateWarranty(warrantyFromRow(variantID, row)); err != nil {
				return result, fmt.Errorf("create warranty for %q: %w", row.SKU, err)
			}
			result.Variants++
		}

		for _, cand := range InferConversions(g.Rows) {
			fromID, okFrom := tx.VariantIDBySKU(cand.FromSKU)
			toID, okTo := tx.VariantIDBySKU(cand.ToSKU)
			if !okFrom || !okTo {
				continue
			}
			conversion := models.UnitConversion{
				FromVariantID: fromID,
				ToVariantID:   toID,
				Rate:          cand.Rate,
			}
			if err := tx.CreateUnitConversion(conversion); err != nil {
				return result, fmt.Errorf("create conversion %s->%s: %w", cand.FromSKU, cand.ToSKU, err)
			}
			result.Conversions++
		}
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("commit import: %w", err)
	}

	e.log.Info("import run committed",
		zap.Int("products", result.Products),
		zap.Int("variants", result.Variants),
		zap.Int("conversions", result.Conversions),
		zap.Int("skipped_rows", result.SkippedRows))
	return result, nil
}

func findDuplicateSKU(rows []Row) string {
	seen := map[string]bool{}
	for _, row := range rows {
		if row.SKU == "" {
			continue
		}
		if seen[row.SKU] {
			return row.SKU
		}
		seen[row.SKU] = true
	}
	return ""
}

func variantFromRow(productID int, row Row) models.ProductVariant {
	return models.ProductVariant{
		ProductID:      productID,
		SKU:            row.SKU,
		Barcode:        row.Barcode,
		Name:           row.VariantName,
		Weight:         row.Weight,
		WeightUnit:     row.WeightUnit,
		Unit:           row.Unit,
		ImageURL:       row.ImageURL,
		RetailPrice:    row.RetailPrice,
		WholesalePrice: row.WholesalePrice,
		ImportPrice:    row.ImportPrice,
		TaxApplied:     row.TaxApplied,
		InputTax:       row.InputTax,
		OutputTax:      row.OutputTax,
	}
}

func inventoryFromRow(variantID int, row Row) models.Inventory {
	return models.Inventory{
		VariantID:    variantID,
		InitialStock: row.InitialStock,
		CurrentStock: row.InitialStock,
		MinStock:     row.MinStock,
		MaxStock:     row.MaxStock,
		Location:     row.Location,
	}
}

func warrantyFromRow(variantID int, row Row) models.Warranty {
	policy := ""
	if row.WarrantyApplied {
		policy = "standard"
	}
	return models.Warranty{
		VariantID:   variantID,
		WarningDays: row.ExpiryWarningDays,
		Policy:      policy,
	}
}
