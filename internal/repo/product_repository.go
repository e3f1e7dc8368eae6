package repo

import models "github.com/khanhvo/retail-backoffice/internal/models"

// ProductFilter narrows product listings; nil pointer fields are ignored.
type ProductFilter struct {
	Name        string
	ProductType string
	Brand       string
	Offset      *int
	Limit       *int
}

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	GetByName(name string) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id int) error
	Filter(f ProductFilter) ([]models.Product, int, error)
}
