package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	models "github.com/khanhvo/retail-backoffice/internal/models"
)

// PostgresImportStore runs bulk imports against Postgres. One Begin covers
// the delete-all and every create of the run; readers never observe a
// half-replaced catalog.
type PostgresImportStore struct {
	db *sql.DB
}

func NewPostgresImportStore(db *sql.DB) *PostgresImportStore {
	return &PostgresImportStore{db: db}
}

func (s *PostgresImportStore) Begin(ctx context.Context) (ImportTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &postgresImportTx{
		ctx:     ctx,
		tx:      tx,
		skuToID: map[string]int{},
	}, nil
}

type postgresImportTx struct {
	ctx     context.Context
	tx      *sql.Tx
	done    bool
	skuToID map[string]int
}

// catalog tables in child-to-parent delete order
var catalogTables = []string{"unit_conversions", "warranties", "inventories", "product_variants", "products"}

func (t *postgresImportTx) DeleteCatalog() error {
	for _, table := range catalogTables {
		if _, err := t.tx.ExecContext(t.ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return nil
}

func (t *postgresImportTx) CreateProducts(products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	query := `INSERT INTO products (name, product_type, description, brand, tags, created_at, updated_at) VALUES `
	args := make([]any, 0, len(products)*7)
	for i, p := range products {
		if i > 0 {
			query += ", "
		}
		base := i * 7
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7)
		args = append(args, p.Name, p.ProductType, p.Description, p.Brand, p.Tags, p.CreatedAt, p.UpdatedAt)
	}
	_, err := t.tx.ExecContext(t.ctx, query, args...)
	return err
}

func (t *postgresImportTx) ProductIDByName(name string) (int, error) {
	var id int
	err := t.tx.QueryRowContext(t.ctx, `SELECT id FROM products WHERE name = $1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrProductNotFound
	}
	return id, err
}

func (t *postgresImportTx) CreateVariant(v models.ProductVariant) (int, error) {
	query := `INSERT INTO product_variants
		(product_id, sku, barcode, name, weight, weight_unit, unit, image_url,
		 retail_price, wholesale_price, import_price, tax_applied, input_tax, output_tax)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	var id int
	err := t.tx.QueryRowContext(t.ctx, query,
		v.ProductID, v.SKU, v.Barcode, v.Name, v.Weight, v.WeightUnit, v.Unit, v.ImageURL,
		v.RetailPrice, v.WholesalePrice, v.ImportPrice, v.TaxApplied, v.InputTax, v.OutputTax).Scan(&id)
	if err != nil {
		return 0, err
	}
	t.skuToID[v.SKU] = id
	return id, nil
}

func (t *postgresImportTx) CreateInventory(inv models.Inventory) error {
	query := `INSERT INTO inventories (variant_id, initial_stock, current_stock, min_stock, max_stock, location)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := t.tx.ExecContext(t.ctx, query,
		inv.VariantID, inv.InitialStock, inv.CurrentStock, inv.MinStock, inv.MaxStock, inv.Location)
	return err
}

func (t *postgresImportTx) CreateWarranty(w models.Warranty) error {
	query := `INSERT INTO warranties (variant_id, warning_days, policy) VALUES ($1, $2, $3)`
	_, err := t.tx.ExecContext(t.ctx, query, w.VariantID, w.WarningDays, w.Policy)
	return err
}

func (t *postgresImportTx) CreateUnitConversion(c models.UnitConversion) error {
	query := `INSERT INTO unit_conversions (from_variant_id, to_variant_id, rate) VALUES ($1, $2, $3)`
	_, err := t.tx.ExecContext(t.ctx, query, c.FromVariantID, c.ToVariantID, c.Rate)
	return err
}

func (t *postgresImportTx) VariantIDBySKU(sku string) (int, bool) {
	id, ok := t.skuToID[sku]
	return id, ok
}

func (t *postgresImportTx) Commit() error {
	t.done = true
	return t.tx.Commit()
}

func (t *postgresImportTx) Rollback() error {
	if t.done {
		return nil
	}
	return t.tx.Rollback()
}
