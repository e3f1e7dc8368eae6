package repo

import models "github.com/khanhvo/retail-backoffice/internal/models"

// PurchaseOrderRepository defines the interface for purchase order flows.
type PurchaseOrderRepository interface {
	// Create persists the order and its items in one transaction.
	Create(order models.PurchaseOrder) (models.PurchaseOrder, error)
	GetAll() ([]models.PurchaseOrder, error)
	GetByID(id int) (models.PurchaseOrder, error)
	// Receive marks an ordered purchase order received and increments stock
	// for every item, atomically. Only "ordered" orders can be received.
	Receive(id int) (models.PurchaseOrder, error)
	Cancel(id int) (models.PurchaseOrder, error)
}
