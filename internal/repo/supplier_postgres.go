package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	models "github.com/khanhvo/retail-backoffice/internal/models"
)

type PostgresSupplierRepository struct {
	db *sql.DB
}

func NewPostgresSupplierRepository(db *sql.DB) *PostgresSupplierRepository {
	return &PostgresSupplierRepository{db: db}
}

func (r *PostgresSupplierRepository) Create(s models.Supplier) (models.Supplier, error) {
	query := `INSERT INTO suppliers (name, phone, email, address, tax_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		s.Name, s.Phone, s.Email, s.Address, s.TaxCode, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
	return s, err
}

func (r *PostgresSupplierRepository) GetAll() ([]models.Supplier, error) {
	query := `SELECT id, name, phone, email, address, tax_code FROM suppliers ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []models.Supplier
	for rows.Next() {
		var s models.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Email, &s.Address, &s.TaxCode); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (r *PostgresSupplierRepository) GetByID(id int) (models.Supplier, error) {
	query := `SELECT id, name, phone, email, address, tax_code FROM suppliers WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var s models.Supplier
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.Name, &s.Phone, &s.Email, &s.Address, &s.TaxCode)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Supplier{}, ErrSupplierNotFound
	}
	return s, err
}

func (r *PostgresSupplierRepository) Update(s models.Supplier) (models.Supplier, error) {
	query := `UPDATE suppliers SET name = $1, phone = $2, email = $3, address = $4, tax_code = $5, updated_at = $6
		WHERE id = $7`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, s.Name, s.Phone, s.Email, s.Address, s.TaxCode, s.UpdatedAt, s.ID)
	if err != nil {
		return models.Supplier{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Supplier{}, ErrSupplierNotFound
	}
	return s, nil
}

func (r *PostgresSupplierRepository) Delete(id int) error {
	query := `DELETE FROM suppliers WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrSupplierNotFound
	}
	return nil
}
