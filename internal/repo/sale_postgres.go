package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	models "github.com/khanhvo/retail-backoffice/internal/models"
)

type PostgresSaleRepository struct {
	db *sql.DB
}

func NewPostgresSaleRepository(db *sql.DB) *PostgresSaleRepository {
	return &PostgresSaleRepository{db: db}
}

// Create books the sale and its stock decrements atomically. The guarded
// UPDATE refuses to take any line below zero stock and aborts the whole sale.
func (r *PostgresSaleRepository) Create(sale models.Sale) (models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Sale{}, err
	}
	defer tx.Rollback()

	query := `INSERT INTO sales (code, cashier_id, subtotal, tax_total, total, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		sale.Code, sale.CashierID, sale.Subtotal, sale.TaxTotal, sale.Total, sale.PaymentMethod, sale.CreatedAt).
		Scan(&sale.ID)
	if err != nil {
		return models.Sale{}, err
	}

	itemQuery := `INSERT INTO sale_items (sale_id, variant_id, sku, name, quantity, unit_price, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	stockQuery := `UPDATE inventories SET current_stock = current_stock - $1
		WHERE variant_id = $2 AND current_stock - $1 >= 0`
	for i := range sale.Items {
		item := &sale.Items[i]
		item.SaleID = sale.ID
		if err := tx.QueryRowContext(ctx, itemQuery,
			item.SaleID, item.VariantID, item.SKU, item.Name, item.Quantity, item.UnitPrice, item.Amount).
			Scan(&item.ID); err != nil {
			return models.Sale{}, fmt.Errorf("create sale item %s: %w", item.SKU, err)
		}

		res, err := tx.ExecContext(ctx, stockQuery, item.Quantity, item.VariantID)
		if err != nil {
			return models.Sale{}, fmt.Errorf("decrement stock for %s: %w", item.SKU, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return models.Sale{}, fmt.Errorf("%w: %s", ErrInsufficientStock, item.SKU)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Sale{}, err
	}
	return sale, nil
}

func (r *PostgresSaleRepository) GetAll() ([]models.Sale, error) {
	query := `SELECT id, code, cashier_id, subtotal, tax_total, total, payment_method, created_at
		FROM sales ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.Code, &s.CashierID, &s.Subtotal, &s.TaxTotal, &s.Total,
			&s.PaymentMethod, &s.CreatedAt); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *PostgresSaleRepository) GetByID(id int) (models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	query := `SELECT id, code, cashier_id, subtotal, tax_total, total, payment_method, created_at
		FROM sales WHERE id = $1`
	var s models.Sale
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.Code, &s.CashierID, &s.Subtotal, &s.TaxTotal, &s.Total, &s.PaymentMethod, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sale{}, ErrSaleNotFound
	}
	if err != nil {
		return models.Sale{}, err
	}

	itemQuery := `SELECT id, sale_id, variant_id, sku, name, quantity, unit_price, amount
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, itemQuery, id)
	if err != nil {
		return models.Sale{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.VariantID, &item.SKU, &item.Name,
			&item.Quantity, &item.UnitPrice, &item.Amount); err != nil {
			return models.Sale{}, err
		}
		s.Items = append(s.Items, item)
	}
	return s, rows.Err()
}
