package repo

import models "github.com/khanhvo/retail-backoffice/internal/models"

// InventoryRepository defines the interface for per-variant stock records.
type InventoryRepository interface {
	Create(inv models.Inventory) (models.Inventory, error)
	GetByVariantID(variantID int) (models.Inventory, error)
	// AdjustStock moves current stock by delta; a delta that would take the
	// stock negative fails with ErrInvalidQuantityChange.
	AdjustStock(variantID int, delta int) (models.Inventory, error)
	LowStock() ([]models.Inventory, error)
}

// WarrantyRepository defines the interface for variant warranty terms.
type WarrantyRepository interface {
	Create(w models.Warranty) (models.Warranty, error)
	GetByVariantID(variantID int) (models.Warranty, error)
}

// ConversionRepository defines the interface for unit-conversion edges.
type ConversionRepository interface {
	Create(c models.UnitConversion) (models.UnitConversion, error)
	GetByVariantID(variantID int) ([]models.UnitConversion, error)
}
