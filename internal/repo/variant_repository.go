package repo

import models "github.com/khanhvo/retail-backoffice/internal/models"

// VariantRepository defines the interface for product variant operations.
type VariantRepository interface {
	Create(v models.ProductVariant) (models.ProductVariant, error)
	GetByID(id int) (models.ProductVariant, error)
	GetBySKU(sku string) (models.ProductVariant, error)
	GetByProductID(productID int) ([]models.ProductVariant, error)
	Update(v models.ProductVariant) (models.ProductVariant, error)
	Delete(id int) error
}
