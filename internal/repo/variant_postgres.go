package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	models "github.com/khanhvo/retail-backoffice/internal/models"
)

const variantColumns = `id, product_id, sku, barcode, name, weight, weight_unit, unit, image_url,
	retail_price, wholesale_price, import_price, tax_applied, input_tax, output_tax`

type PostgresVariantRepository struct {
	db *sql.DB
}

func NewPostgresVariantRepository(db *sql.DB) *PostgresVariantRepository {
	return &PostgresVariantRepository{db: db}
}

func scanVariant(row interface{ Scan(...any) error }) (models.ProductVariant, error) {
	var v models.ProductVariant
	err := row.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Barcode, &v.Name, &v.Weight, &v.WeightUnit,
		&v.Unit, &v.ImageURL, &v.RetailPrice, &v.WholesalePrice, &v.ImportPrice,
		&v.TaxApplied, &v.InputTax, &v.OutputTax)
	return v, err
}

func (r *PostgresVariantRepository) Create(v models.ProductVariant) (models.ProductVariant, error) {
	query := `INSERT INTO product_variants
		(product_id, sku, barcode, name, weight, weight_unit, unit, image_url,
		 retail_price, wholesale_price, import_price, tax_applied, input_tax, output_tax)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		v.ProductID, v.SKU, v.Barcode, v.Name, v.Weight, v.WeightUnit, v.Unit, v.ImageURL,
		v.RetailPrice, v.WholesalePrice, v.ImportPrice, v.TaxApplied, v.InputTax, v.OutputTax).Scan(&v.ID)
	if err != nil && strings.Contains(err.Error(), "unique constraint") {
		return models.ProductVariant{}, ErrDuplicatedValueUnique
	}
	return v, err
}

func (r *PostgresVariantRepository) GetByID(id int) (models.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	v, err := scanVariant(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ProductVariant{}, ErrVariantNotFound
	}
	return v, err
}

func (r *PostgresVariantRepository) GetBySKU(sku string) (models.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE sku = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	v, err := scanVariant(r.db.QueryRowContext(ctx, query, sku))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ProductVariant{}, ErrVariantNotFound
	}
	return v, err
}

func (r *PostgresVariantRepository) GetByProductID(productID int) ([]models.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE product_id = $1 ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []models.ProductVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

func (r *PostgresVariantRepository) Update(v models.ProductVariant) (models.ProductVariant, error) {
	query := `UPDATE product_variants SET sku = $1, barcode = $2, name = $3, weight = $4,
		weight_unit = $5, unit = $6, image_url = $7, retail_price = $8, wholesale_price = $9,
		import_price = $10, tax_applied = $11, input_tax = $12, output_tax = $13
		WHERE id = $14`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query,
		v.SKU, v.Barcode, v.Name, v.Weight, v.WeightUnit, v.Unit, v.ImageURL,
		v.RetailPrice, v.WholesalePrice, v.ImportPrice, v.TaxApplied, v.InputTax, v.OutputTax, v.ID)
	if err != nil {
		return models.ProductVariant{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.ProductVariant{}, ErrVariantNotFound
	}
	return v, nil
}

func (r *PostgresVariantRepository) Delete(id int) error {
	query := `DELETE FROM product_variants WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrVariantNotFound
	}
	return nil
}
