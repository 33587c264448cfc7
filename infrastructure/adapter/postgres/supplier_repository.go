package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/domain/entity"
)

const supplierColumns = `id, name, document, email, phone, status, created_at, updated_at`

type SupplierRepositoryAdapter struct {
	db *sql.DB
}

func NewSupplierRepositoryAdapter(db *sql.DB) outbound.SupplierRepository {
	return &SupplierRepositoryAdapter{db: db}
}

func scanSupplier(row interface{ Scan(...interface{}) error }) (*entity.Supplier, error) {
	var s entity.Supplier
	var phone sql.NullString
	err := row.Scan(&s.ID, &s.Name, &s.Document, &s.Email, &phone, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Phone = phone.String
	return &s, nil
}

func (r *SupplierRepositoryAdapter) FindByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`

	supplier, err := scanSupplier(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}
	return supplier, nil
}

func (r *SupplierRepositoryAdapter) Create(ctx context.Context, supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		supplier.ID,
		supplier.Name,
		supplier.Document,
		supplier.Email,
		nullString(supplier.Phone),
		string(supplier.Status),
		supplier.CreatedAt,
		supplier.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return outbound.ErrSupplierAlreadyExists
		}
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepositoryAdapter) Update(ctx context.Context, supplier *entity.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $2, document = $3, email = $4, phone = $5, status = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		supplier.ID,
		supplier.Name,
		supplier.Document,
		supplier.Email,
		nullString(supplier.Phone),
		string(supplier.Status),
		supplier.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return outbound.ErrSupplierAlreadyExists
		}
		return fmt.Errorf("failed to update supplier: %w", err)
	}
	return expectAffected(result, outbound.ErrSupplierNotFound)
}

// Delete relies on the stores.supplier_id foreign key to refuse removing a
// supplier that still owns stores.
func (r *SupplierRepositoryAdapter) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return outbound.ErrSupplierHasStores
		}
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	return expectAffected(result, outbound.ErrSupplierNotFound)
}

func (r *SupplierRepositoryAdapter) FindAll(ctx context.Context, offset, limit int, filters outbound.SupplierFilters) ([]*entity.Supplier, int, error) {
	where := newWhere()
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		where.add("(name ILIKE ? OR document ILIKE ?)", pattern, pattern)
	}
	if filters.Status != "" {
		where.add("status = ?", filters.Status)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM suppliers %s", where.clause())
	if err := r.db.QueryRowContext(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count suppliers: %w", err)
	}

	pageClause, args := where.page(limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM suppliers %s ORDER BY name ASC %s`, supplierColumns, where.clause(), pageClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := []*entity.Supplier{}
	for rows.Next() {
		supplier, err := scanSupplier(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, supplier)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate suppliers: %w", err)
	}

	return suppliers, total, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
