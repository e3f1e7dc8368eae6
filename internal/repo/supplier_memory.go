package repo

import (
	"sync"

	models "github.com/khanhvo/retail-backoffice/internal/models"
)

// MemorySupplierRepository is an in-memory implementation of SupplierRepository.
type MemorySupplierRepository struct {
	mu        sync.Mutex
	suppliers []models.Supplier
	nextID    int
}

func NewMemorySupplierRepository() *MemorySupplierRepository {
	return &MemorySupplierRepository{nextID: 1}
}

func (r *MemorySupplierRepository) Create(s models.Supplier) (models.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.nextID
	r.nextID++
	r.suppliers = append(r.suppliers, s)
	return s, nil
}

func (r *MemorySupplierRepository) GetAll() ([]models.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Supplier, len(r.suppliers))
	copy(out, r.suppliers)
	return out, nil
}

func (r *MemorySupplierRepository) GetByID(id int) (models.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.suppliers {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Supplier{}, ErrSupplierNotFound
}

func (r *MemorySupplierRepository) Update(s models.Supplier) (models.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.suppliers {
		if existing.ID == s.ID {
			r.suppliers[i] = s
			return s, nil
		}
	}
	return models.Supplier{}, ErrSupplierNotFound
}

func (r *MemorySupplierRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.suppliers {
		if s.ID == id {
			r.suppliers = append(r.suppliers[:i], r.suppliers[i+1:]...)
			return nil
		}
	}
	return ErrSupplierNotFound
}
