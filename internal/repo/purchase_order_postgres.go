package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	models "github.com/khanhvo/retail-backoffice/internal/models"
)

type PostgresPurchaseOrderRepository struct {
	db *sql.DB
}

func NewPostgresPurchaseOrderRepository(db *sql.DB) *PostgresPurchaseOrderRepository {
	return &PostgresPurchaseOrderRepository{db: db}
}

func (r *PostgresPurchaseOrderRepository) Create(order models.PurchaseOrder) (models.PurchaseOrder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.PurchaseOrder{}, err
	}
	defer tx.Rollback()

	query := `INSERT INTO purchase_orders (code, supplier_id, status, note, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		order.Code, order.SupplierID, order.Status, order.Note, order.CreatedAt).Scan(&order.ID)
	if err != nil {
		return models.PurchaseOrder{}, err
	}

	itemQuery := `INSERT INTO purchase_order_items (order_id, variant_id, quantity, unit_cost)
		VALUES ($1, $2, $3, $4) RETURNING id`
	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.QueryRowContext(ctx, itemQuery,
			item.OrderID, item.VariantID, item.Quantity, item.UnitCost).Scan(&item.ID); err != nil {
			return models.PurchaseOrder{}, fmt.Errorf("create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.PurchaseOrder{}, err
	}
	return order, nil
}

func (r *PostgresPurchaseOrderRepository) GetAll() ([]models.PurchaseOrder, error) {
	query := `SELECT id, code, supplier_id, status, note, created_at, COALESCE(received_at, '')
		FROM purchase_orders ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.PurchaseOrder
	for rows.Next() {
		var o models.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.Code, &o.SupplierID, &o.Status, &o.Note, &o.CreatedAt, &o.ReceivedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *PostgresPurchaseOrderRepository) GetByID(id int) (models.PurchaseOrder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	query := `SELECT id, code, supplier_id, status, note, created_at, COALESCE(received_at, '')
		FROM purchase_orders WHERE id = $1`
	var o models.PurchaseOrder
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&o.ID, &o.Code, &o.SupplierID, &o.Status, &o.Note, &o.CreatedAt, &o.ReceivedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PurchaseOrder{}, ErrOrderNotFound
	}
	if err != nil {
		return models.PurchaseOrder{}, err
	}

	items, err := r.itemsForOrder(ctx, id)
	if err != nil {
		return models.PurchaseOrder{}, err
	}
	o.Items = items
	return o, nil
}

func (r *PostgresPurchaseOrderRepository) itemsForOrder(ctx context.Context, orderID int) ([]models.PurchaseOrderItem, error) {
	query := `SELECT id, order_id, variant_id, quantity, unit_cost FROM purchase_order_items
		WHERE order_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.PurchaseOrderItem
	for rows.Next() {
		var item models.PurchaseOrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.VariantID, &item.Quantity, &item.UnitCost); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Receive flips an ordered purchase order to received and books the stock in,
// all in one transaction.
func (r *PostgresPurchaseOrderRepository) Receive(id int) (models.PurchaseOrder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.PurchaseOrder{}, err
	}
	defer tx.Rollback()

	receivedAt := time.Now().Format(time.RFC3339)
	res, err := tx.ExecContext(ctx,
		`UPDATE purchase_orders SET status = $1, received_at = $2 WHERE id = $3 AND status = $4`,
		models.PurchaseOrderReceived, receivedAt, id, models.PurchaseOrderOrdered)
	if err != nil {
		return models.PurchaseOrder{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		if _, err := r.GetByID(id); errors.Is(err, ErrOrderNotFound) {
			return models.PurchaseOrder{}, ErrOrderNotFound
		}
		return models.PurchaseOrder{}, ErrOrderNotOpen
	}

	items, err := r.itemsForOrder(ctx, id)
	if err != nil {
		return models.PurchaseOrder{}, err
	}
	for _, item := range items {
		res, err := tx.ExecContext(ctx,
			`UPDATE inventories SET current_stock = current_stock + $1 WHERE variant_id = $2`,
			item.Quantity, item.VariantID)
		if err != nil {
			return models.PurchaseOrder{}, fmt.Errorf("receive item variant %d: %w", item.VariantID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return models.PurchaseOrder{}, fmt.Errorf("receive item variant %d: %w", item.VariantID, ErrInventoryNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.PurchaseOrder{}, err
	}
	return r.GetByID(id)
}

func (r *PostgresPurchaseOrderRepository) Cancel(id int) (models.PurchaseOrder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE purchase_orders SET status = $1 WHERE id = $2 AND status = $3`,
		models.PurchaseOrderCancelled, id, models.PurchaseOrderOrdered)
	if err != nil {
		return models.PurchaseOrder{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		if _, err := r.GetByID(id); errors.Is(err, ErrOrderNotFound) {
			return models.PurchaseOrder{}, ErrOrderNotFound
		}
		return models.PurchaseOrder{}, ErrOrderNotOpen
	}
	return r.GetByID(id)
}
