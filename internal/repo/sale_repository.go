package repo

import models "github.com/khanhvo/retail-backoffice/internal/models"

// SaleRepository defines the interface for POS sales.
type SaleRepository interface {
	// Create persists the sale with its items and decrements stock for every
	// item inside one transaction. Insufficient stock on any line aborts the
	// whole sale with ErrInsufficientStock.
	Create(sale models.Sale) (models.Sale, error)
	GetAll() ([]models.Sale, error)
	GetByID(id int) (models.Sale, error)
}
