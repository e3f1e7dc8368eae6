package repo

import (
	"context"

	models "github.com/khanhvo/retail-backoffice/internal/models"
)

// ImportTx is the transactional surface of one bulk import run. Every method
// operates inside the same transaction; nothing is visible to readers until
// Commit. Rollback after Commit is a no-op, so callers may defer it.
type ImportTx interface {
	// DeleteCatalog removes all catalog rows, children before parents.
	DeleteCatalog() error
	CreateProducts(products []models.Product) error
	ProductIDByName(name string) (int, error)
	CreateVariant(v models.ProductVariant) (int, error)
	CreateInventory(inv models.Inventory) error
	CreateWarranty(w models.Warranty) error
	CreateUnitConversion(c models.UnitConversion) error
	// VariantIDBySKU resolves only variants created earlier in this run.
	VariantIDBySKU(sku string) (int, bool)
	Commit() error
	Rollback() error
}

// ImportStore opens import transactions.
type ImportStore interface {
	Begin(ctx context.Context) (ImportTx, error)
}
