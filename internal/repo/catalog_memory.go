package repo

import (
	"context"
	"strings"
	"sync"

	models "github.com/khanhvo/retail-backoffice/internal/models"
)

// catalogData is the shared backing store of the in-memory catalog repos, so
// that variants created through the import store are visible to the product,
// inventory and POS paths, as they would be in Postgres.
type catalogData struct {
	mu sync.Mutex

	products    []models.Product
	variants    []models.ProductVariant
	inventories []models.Inventory
	warranties  []models.Warranty
	conversions []models.UnitConversion

	nextProductID    int
	nextVariantID    int
	nextInventoryID  int
	nextWarrantyID   int
	nextConversionID int
}

func newCatalogData() *catalogData {
	return &catalogData{
		nextProductID:    1,
		nextVariantID:    1,
		nextInventoryID:  1,
		nextWarrantyID:   1,
		nextConversionID: 1,
	}
}

// MemoryCatalog is an in-memory implementation of the catalog repositories,
// used by tests and local runs without Postgres.
type MemoryCatalog struct {
	data *catalogData
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{data: newCatalogData()}
}

func (c *MemoryCatalog) Products() *MemoryProductRepository {
	return &MemoryProductRepository{data: c.data}
}

func (c *MemoryCatalog) Variants() *MemoryVariantRepository {
	return &MemoryVariantRepository{data: c.data}
}

func (c *MemoryCatalog) Inventories() *MemoryInventoryRepository {
	return &MemoryInventoryRepository{data: c.data}
}

func (c *MemoryCatalog) Warranties() *MemoryWarrantyRepository {
	return &MemoryWarrantyRepository{data: c.data}
}

func (c *MemoryCatalog) Conversions() *MemoryConversionRepository {
	return &MemoryConversionRepository{data: c.data}
}

func (c *MemoryCatalog) ImportStore() *MemoryImportStore {
	return &MemoryImportStore{data: c.data}
}

// Counts reports table sizes, in the order products, variants, inventories,
// warranties, conversions.
func (c *MemoryCatalog) Counts() (int, int, int, int, int) {
	c.data.mu.Lock()
	defer c.data.mu.Unlock()
	return len(c.data.products), len(c.data.variants), len(c.data.inventories),
		len(c.data.warranties), len(c.data.conversions)
}

// Reset clears every table.
func (c *MemoryCatalog) Reset() {
	c.data.mu.Lock()
	defer c.data.mu.Unlock()
	c.data.clearLocked()
}

func (d *catalogData) clearLocked() {
	d.products = nil
	d.variants = nil
	d.inventories = nil
	d.warranties = nil
	d.conversions = nil
}

type MemoryProductRepository struct {
	data *catalogData
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{data: newCatalogData()}
}

func (r *MemoryProductRepository) Create(p models.Product) (models.Product, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	for _, existing := range r.data.products {
		if existing.Name == p.Name {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}
	p.ID = r.data.nextProductID
	r.data.nextProductID++
	r.data.products = append(r.data.products, p)
	return p, nil
}

func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	out := make([]models.Product, len(r.data.products))
	copy(out, r.data.products)
	return out, nil
}

func (r *MemoryProductRepository) GetByID(id int) (models.Product, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	for _, p := range r.data.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *MemoryProductRepository) GetByName(name string) (models.Product, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	for _, p := range r.data.products {
		if p.Name == name {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *MemoryProductRepository) Update(p models.Product) (models.Product, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	for i, existing := range r.data.products {
		if existing.ID == p.ID {
			r.data.products[i] = p
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *MemoryProductRepository) Delete(id int) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	for i, p := range r.data.products {
		if p.ID == id {
			r.data.products = append(r.data.products[:i], r.data.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *MemoryProductRepository) Filter(f ProductFilter) ([]models.Product, int, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()

	var filtered []models.Product
	for _, p := range r.data.products {
		if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.ProductType != "" && p.ProductType != f.ProductType {
			continue
		}
		if f.Brand != "" && !strings.Contains(strings.ToLower(p.Brand), strings.ToLower(f.Brand)) {
			continue
		}
		filtered = append(filtered, p)
	}

	total := len(filtered)
	start := 0
	if f.Offset != nil && *f.Offset > 0 {
		start = min(*f.Offset, total)
	}
	end := total
	if f.Limit != nil && *f.Limit > 0 {
		end = min(start+*f.Limit, total)
	}
	return filtered[start:end], total, nil
}

type MemoryVariantRepository struct {
	data *catalogData
}

func (r *MemoryVariantRepository) Create(v models.ProductVariant) (models.ProductVariant, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	for _, existing := range r.data.variants {
		if existing.SKU == v.SKU {
			return models.ProductVariant{}, ErrDuplicatedValueUnique
		}
	}
	v.ID = r.data.nextVariantID
	r.data.nextVariantID++
	r.data.variants = append(r.data.variants, v)
	return v, nil
}

func (r *MemoryVariantRepository) GetByID(id int) (models.ProductVariant, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	for _, v := range r.data.variants {
		if v.ID == id {
			return v, nil
		}
	}
	return models.ProductVariant{}, ErrVariantNotFound
}

func (r *MemoryVariantRepository) GetBySKU(sku string) (models.ProductVariant, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	for _, v := range r.data.variants {
		if v.SKU == sku {
			return v, nil
		}
	}
	return models.ProductVariant{}, ErrVariantNotFound
}

func (r *MemoryVariantRepository) GetByProductID(productID int) ([]models.ProductVariant, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	var out []models.ProductVariant
	for _, v := range r.data.variants {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *MemoryVariantRepository) Update(v models.ProductVariant) (models.ProductVariant, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	for i, existing := range r.data.variants {
		if existing.ID == v.ID {
			r.data.variants[i] = v
			return v, nil
		}
	}
	return models.ProductVariant{}, ErrVariantNotFound
}

func (r *MemoryVariantRepository) Delete(id int) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	for i, v := range r.data.variants {
		if v.ID == id {
			r.data.variants = append(r.data.variants[:i], r.data.variants[i+1:]...)
			return nil
		}
	}
	return ErrVariantNotFound
}

type MemoryInventoryRepository struct {
	data *catalogData
}

func (r *MemoryInventoryRepository) Create(inv models.Inventory) (models.Inventory, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	inv.ID = r.data.nextInventoryID
	r.data.nextInventoryID++
	r.data.inventories = append(r.data.inventories, inv)
	return inv, nil
}

func (r *MemoryInventoryRepository) GetByVariantID(variantID int) (models.Inventory, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	for _, inv := range r.data.inventories {
		if inv.VariantID == variantID {
			return inv, nil
		}
	}
	return models.Inventory{}, ErrInventoryNotFound
}

func (r *MemoryInventoryRepository) AdjustStock(variantID int, delta int) (models.Inventory, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	return r.data.adjustStockLocked(variantID, delta)
}

func (d *catalogData) adjustStockLocked(variantID int, delta int) (models.Inventory, error) {
	for i, inv := range d.inventories {
		if inv.VariantID == variantID {
			if inv.CurrentStock+delta < 0 {
				return models.Inventory{}, ErrInvalidQuantityChange
			}
			d.inventories[i].CurrentStock += delta
			return d.inventories[i], nil
		}
	}
	return models.Inventory{}, ErrInventoryNotFound
}

func (r *MemoryInventoryRepository) LowStock() ([]models.Inventory, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	var out []models.Inventory
	for _, inv := range r.data.inventories {
		if inv.CurrentStock < inv.MinStock {
			out = append(out, inv)
		}
	}
	return out, nil
}

type MemoryWarrantyRepository struct {
	data *catalogData
}

func (r *MemoryWarrantyRepository) Create(w models.Warranty) (models.Warranty, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	w.ID = r.data.nextWarrantyID
	r.data.nextWarrantyID++
	r.data.warranties = append(r.data.warranties, w)
	return w, nil
}

func (r *MemoryWarrantyRepository) GetByVariantID(variantID int) (models.Warranty, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	for _, w := range r.data.warranties {
		if w.VariantID == variantID {
			return w, nil
		}
	}
	return models.Warranty{}, ErrVariantNotFound
}

type MemoryConversionRepository struct {
	data *catalogData
}

func (r *MemoryConversionRepository) Create(c models.UnitConversion) (models.UnitConversion, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	c.ID = r.data.nextConversionID
	r.data.nextConversionID++
	r.data.conversions = append(r.data.conversions, c)
	return c, nil
}

func (r *MemoryConversionRepository) GetByVariantID(variantID int) ([]models.UnitConversion, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	var out []models.UnitConversion
	for _, c := range r.data.conversions {
		if c.FromVariantID == variantID || c.ToVariantID == variantID {
			out = append(out, c)
		}
	}
	return out, nil
}

// MemoryImportStore implements ImportStore over the shared in-memory catalog.
// The transaction mutates a staged copy and swaps it in on Commit, so a
// failed run leaves the catalog untouched, matching the Postgres store.
type MemoryImportStore struct {
	data *catalogData
}

func (s *MemoryImportStore) Begin(ctx context.Context) (ImportTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.data.mu.Lock()
	staged := &catalogData{
		nextProductID:    s.data.nextProductID,
		nextVariantID:    s.data.nextVariantID,
		nextInventoryID:  s.data.nextInventoryID,
		nextWarrantyID:   s.data.nextWarrantyID,
		nextConversionID: s.data.nextConversionID,
	}
	staged.products = append(staged.products, s.data.products...)
	staged.variants = append(staged.variants, s.data.variants...)
	staged.inventories = append(staged.inventories, s.data.inventories...)
	staged.warranties = append(staged.warranties, s.data.warranties...)
	staged.conversions = append(staged.conversions, s.data.conversions...)
	s.data.mu.Unlock()

	return &memoryImportTx{live: s.data, staged: staged, skuToID: map[string]int{}}, nil
}

type memoryImportTx struct {
	live    *catalogData
	staged  *catalogData
	skuToID map[string]int
	done    bool
}

func (t *memoryImportTx) DeleteCatalog() error {
	t.staged.clearLocked()
	return nil
}

func (t *memoryImportTx) CreateProducts(products []models.Product) error {
	for _, p := range products {
		p.ID = t.staged.nextProductID
		t.staged.nextProductID++
		t.staged.products = append(t.staged.products, p)
	}
	return nil
}

func (t *memoryImportTx) ProductIDByName(name string) (int, error) {
	for _, p := range t.staged.products {
		if p.Name == name {
			return p.ID, nil
		}
	}
	return 0, ErrProductNotFound
}

func (t *memoryImportTx) CreateVariant(v models.ProductVariant) (int, error) {
	for _, existing := range t.staged.variants {
		if existing.SKU == v.SKU {
			return 0, ErrDuplicatedValueUnique
		}
	}
	v.ID = t.staged.nextVariantID
	t.staged.nextVariantID++
	t.staged.variants = append(t.staged.variants, v)
	t.skuToID[v.SKU] = v.ID
	return v.ID, nil
}

func (t *memoryImportTx) CreateInventory(inv models.Inventory) error {
	inv.ID = t.staged.nextInventoryID
	t.staged.nextInventoryID++
	t.staged.inventories = append(t.staged.inventories, inv)
	return nil
}

func (t *memoryImportTx) CreateWarranty(w models.Warranty) error {
	w.ID = t.staged.nextWarrantyID
	t.staged.nextWarrantyID++
	t.staged.warranties = append(t.staged.warranties, w)
	return nil
}

func (t *memoryImportTx) CreateUnitConversion(c models.UnitConversion) error {
	c.ID = t.staged.nextConversionID
	t.staged.nextConversionID++
	t.staged.conversions = append(t.staged.conversions, c)
	return nil
}

func (t *memoryImportTx) VariantIDBySKU(sku string) (int, bool) {
	id, ok := t.skuToID[sku]
	return id, ok
}

func (t *memoryImportTx) Commit() error {
	t.live.mu.Lock()
	defer t.live.mu.Unlock()
	t.live.products = t.staged.products
	t.live.variants = t.staged.variants
	t.live.inventories = t.staged.inventories
	t.live.warranties = t.staged.warranties
	t.live.conversions = t.staged.conversions
	t.live.nextProductID = t.staged.nextProductID
	t.live.nextVariantID = t.staged.nextVariantID
	t.live.nextInventoryID = t.staged.nextInventoryID
	t.live.nextWarrantyID = t.staged.nextWarrantyID
	t.live.nextConversionID = t.staged.nextConversionID
	t.done = true
	return nil
}

func (t *memoryImportTx) Rollback() error {
	t.staged = nil
	return nil
}
