package repo

import (
	"sync"
	"time"

	models "github.com/khanhvo/retail-backoffice/internal/models"
)

// MemoryPurchaseOrderRepository is an in-memory implementation of
// PurchaseOrderRepository. It shares the catalog so Receive can book stock.
type MemoryPurchaseOrderRepository struct {
	mu         sync.Mutex
	orders     []models.PurchaseOrder
	nextID     int
	nextItemID int
	catalog    *MemoryCatalog
}

func NewMemoryPurchaseOrderRepository(catalog *MemoryCatalog) *MemoryPurchaseOrderRepository {
	return &MemoryPurchaseOrderRepository{nextID: 1, nextItemID: 1, catalog: catalog}
}

func (r *MemoryPurchaseOrderRepository) Create(order models.PurchaseOrder) (models.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.ID = r.nextID
	r.nextID++
	for i := range order.Items {
		order.Items[i].ID = r.nextItemID
		r.nextItemID++
		order.Items[i].OrderID = order.ID
	}
	r.orders = append(r.orders, order)
	return order, nil
}

func (r *MemoryPurchaseOrderRepository) GetAll() ([]models.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.PurchaseOrder, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *MemoryPurchaseOrderRepository) GetByID(id int) (models.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(id)
}

func (r *MemoryPurchaseOrderRepository) getLocked(id int) (models.PurchaseOrder, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.PurchaseOrder{}, ErrOrderNotFound
}

func (r *MemoryPurchaseOrderRepository) Receive(id int) (models.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.orders {
		if o.ID != id {
			continue
		}
		if o.Status != models.PurchaseOrderOrdered {
			return models.PurchaseOrder{}, ErrOrderNotOpen
		}
		inventories := r.catalog.Inventories()
		for _, item := range o.Items {
			if _, err := inventories.AdjustStock(item.VariantID, item.Quantity); err != nil {
				return models.PurchaseOrder{}, err
			}
		}
		r.orders[i].Status = models.PurchaseOrderReceived
		r.orders[i].ReceivedAt = time.Now().Format(time.RFC3339)
		return r.orders[i], nil
	}
	return models.PurchaseOrder{}, ErrOrderNotFound
}

func (r *MemoryPurchaseOrderRepository) Cancel(id int) (models.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.orders {
		if o.ID != id {
			continue
		}
		if o.Status != models.PurchaseOrderOrdered {
			return models.PurchaseOrder{}, ErrOrderNotOpen
		}
		r.orders[i].Status = models.PurchaseOrderCancelled
		return r.orders[i], nil
	}
	return models.PurchaseOrder{}, ErrOrderNotFound
}
