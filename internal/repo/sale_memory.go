package repo

import (
	"fmt"
	"sync"

	models "github.com/khanhvo/retail-backoffice/internal/models"
)

// MemorySaleRepository is an in-memory implementation of SaleRepository. It
// decrements shared catalog stock with the same all-or-nothing behavior as
// the Postgres transaction.
type MemorySaleRepository struct {
	mu         sync.Mutex
	sales      []models.Sale
	nextID     int
	nextItemID int
	catalog    *MemoryCatalog
}

func NewMemorySaleRepository(catalog *MemoryCatalog) *MemorySaleRepository {
	return &MemorySaleRepository{nextID: 1, nextItemID: 1, catalog: catalog}
}

func (r *MemorySaleRepository) Create(sale models.Sale) (models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inventories := r.catalog.Inventories()
	// check first so a failing line does not leave earlier decrements behind
	for _, item := range sale.Items {
		inv, err := inventories.GetByVariantID(item.VariantID)
		if err != nil {
			return models.Sale{}, err
		}
		if inv.CurrentStock < item.Quantity {
			return models.Sale{}, fmt.Errorf("%w: %s", ErrInsufficientStock, item.SKU)
		}
	}
	for _, item := range sale.Items {
		if _, err := inventories.AdjustStock(item.VariantID, -item.Quantity); err != nil {
			return models.Sale{}, err
		}
	}

	sale.ID = r.nextID
	r.nextID++
	for i := range sale.Items {
		sale.Items[i].ID = r.nextItemID
		r.nextItemID++
		sale.Items[i].SaleID = sale.ID
	}
	r.sales = append(r.sales, sale)
	return sale, nil
}

func (r *MemorySaleRepository) GetAll() ([]models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Sale, len(r.sales))
	copy(out, r.sales)
	return out, nil
}

func (r *MemorySaleRepository) GetByID(id int) (models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Sale{}, ErrSaleNotFound
}
