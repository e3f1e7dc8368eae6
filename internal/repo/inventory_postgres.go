package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	models "github.com/khanhvo/retail-backoffice/internal/models"
)

type PostgresInventoryRepository struct {
	db *sql.DB
}

func NewPostgresInventoryRepository(db *sql.DB) *PostgresInventoryRepository {
	return &PostgresInventoryRepository{db: db}
}

func (r *PostgresInventoryRepository) Create(inv models.Inventory) (models.Inventory, error) {
	query := `INSERT INTO inventories (variant_id, initial_stock, current_stock, min_stock, max_stock, location)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		inv.VariantID, inv.InitialStock, inv.CurrentStock, inv.MinStock, inv.MaxStock, inv.Location).Scan(&inv.ID)
	return inv, err
}

func (r *PostgresInventoryRepository) GetByVariantID(variantID int) (models.Inventory, error) {
	query := `SELECT id, variant_id, initial_stock, current_stock, min_stock, max_stock, location
		FROM inventories WHERE variant_id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var inv models.Inventory
	err := r.db.QueryRowContext(ctx, query, variantID).
		Scan(&inv.ID, &inv.VariantID, &inv.InitialStock, &inv.CurrentStock, &inv.MinStock, &inv.MaxStock, &inv.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Inventory{}, ErrInventoryNotFound
	}
	return inv, err
}

func (r *PostgresInventoryRepository) AdjustStock(variantID int, delta int) (models.Inventory, error) {
	query := `
		UPDATE inventories
		SET current_stock = current_stock + $1
		WHERE variant_id = $2 AND current_stock + $1 >= 0
		RETURNING id, variant_id, initial_stock, current_stock, min_stock, max_stock, location
	`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var inv models.Inventory
	err := r.db.QueryRowContext(ctx, query, delta, variantID).
		Scan(&inv.ID, &inv.VariantID, &inv.InitialStock, &inv.CurrentStock, &inv.MinStock, &inv.MaxStock, &inv.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Inventory{}, ErrInvalidQuantityChange
	}
	return inv, err
}

func (r *PostgresInventoryRepository) LowStock() ([]models.Inventory, error) {
	query := `SELECT id, variant_id, initial_stock, current_stock, min_stock, max_stock, location
		FROM inventories WHERE current_stock < min_stock ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inventories []models.Inventory
	for rows.Next() {
		var inv models.Inventory
		if err := rows.Scan(&inv.ID, &inv.VariantID, &inv.InitialStock, &inv.CurrentStock,
			&inv.MinStock, &inv.MaxStock, &inv.Location); err != nil {
			return nil, err
		}
		inventories = append(inventories, inv)
	}
	return inventories, rows.Err()
}

type PostgresWarrantyRepository struct {
	db *sql.DB
}

func NewPostgresWarrantyRepository(db *sql.DB) *PostgresWarrantyRepository {
	return &PostgresWarrantyRepository{db: db}
}

func (r *PostgresWarrantyRepository) Create(w models.Warranty) (models.Warranty, error) {
	query := `INSERT INTO warranties (variant_id, warning_days, policy) VALUES ($1, $2, $3) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, w.VariantID, w.WarningDays, w.Policy).Scan(&w.ID)
	return w, err
}

func (r *PostgresWarrantyRepository) GetByVariantID(variantID int) (models.Warranty, error) {
	query := `SELECT id, variant_id, warning_days, policy FROM warranties WHERE variant_id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var w models.Warranty
	err := r.db.QueryRowContext(ctx, query, variantID).Scan(&w.ID, &w.VariantID, &w.WarningDays, &w.Policy)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Warranty{}, ErrVariantNotFound
	}
	return w, err
}

type PostgresConversionRepository struct {
	db *sql.DB
}

func NewPostgresConversionRepository(db *sql.DB) *PostgresConversionRepository {
	return &PostgresConversionRepository{db: db}
}

func (r *PostgresConversionRepository) Create(c models.UnitConversion) (models.UnitConversion, error) {
	query := `INSERT INTO unit_conversions (from_variant_id, to_variant_id, rate) VALUES ($1, $2, $3) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, c.FromVariantID, c.ToVariantID, c.Rate).Scan(&c.ID)
	return c, err
}

func (r *PostgresConversionRepository) GetByVariantID(variantID int) ([]models.UnitConversion, error) {
	query := `SELECT id, from_variant_id, to_variant_id, rate FROM unit_conversions
		WHERE from_variant_id = $1 OR to_variant_id = $1 ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, variantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversions []models.UnitConversion
	for rows.Next() {
		var c models.UnitConversion
		if err := rows.Scan(&c.ID, &c.FromVariantID, &c.ToVariantID, &c.Rate); err != nil {
			return nil, err
		}
		conversions = append(conversions, c)
	}
	return conversions, rows.Err()
}
