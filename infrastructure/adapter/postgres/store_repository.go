package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/domain/entity"
)

const storeColumns = `id, supplier_id, name, city, state, address, installation_status, checklist, created_at, updated_at`

type StoreRepositoryAdapter struct {
	db *sql.DB
}

func NewStoreRepositoryAdapter(db *sql.DB) outbound.StoreRepository {
	return &StoreRepositoryAdapter{db: db}
}

func scanStore(row interface{ Scan(...interface{}) error }) (*entity.Store, error) {
	var s entity.Store
	var address sql.NullString
	var checklistJSON []byte
	err := row.Scan(
		&s.ID,
		&s.SupplierID,
		&s.Name,
		&s.City,
		&s.State,
		&address,
		&s.InstallationStatus,
		&checklistJSON,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Address = address.String
	if len(checklistJSON) > 0 {
		if err := json.Unmarshal(checklistJSON, &s.Checklist); err != nil {
			return nil, fmt.Errorf("failed to unmarshal checklist: %w", err)
		}
	}
	return &s, nil
}

func (r *StoreRepositoryAdapter) FindByID(ctx context.Context, id string) (*entity.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`

	store, err := scanStore(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to find store: %w", err)
	}
	return store, nil
}

func (r *StoreRepositoryAdapter) Create(ctx context.Context, store *entity.Store) error {
	checklistJSON, err := json.Marshal(store.Checklist)
	if err != nil {
		return fmt.Errorf("failed to marshal checklist: %w", err)
	}

	query := `
		INSERT INTO stores (` + storeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.db.ExecContext(ctx, query,
		store.ID,
		store.SupplierID,
		store.Name,
		store.City,
		store.State,
		nullString(store.Address),
		string(store.InstallationStatus),
		string(checklistJSON),
		store.CreatedAt,
		store.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return outbound.ErrSupplierNotFound
		}
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

func (r *StoreRepositoryAdapter) Update(ctx context.Context, store *entity.Store) error {
	return updateStore(ctx, r.db, store)
}

func (r *StoreRepositoryAdapter) UpdateChecklist(ctx context.Context, id string, fn func(store *entity.Store) error) (*entity.Store, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1 FOR UPDATE`
	store, err := scanStore(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to lock store: %w", err)
	}

	if err := fn(store); err != nil {
		return nil, err
	}
	if err := updateStore(ctx, tx, store); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit checklist: %w", err)
	}
	return store, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func updateStore(ctx context.Context, db execer, store *entity.Store) error {
	checklistJSON, err := json.Marshal(store.Checklist)
	if err != nil {
		return fmt.Errorf("failed to marshal checklist: %w", err)
	}

	query := `
		UPDATE stores
		SET supplier_id = $2, name = $3, city = $4, state = $5, address = $6,
		    installation_status = $7, checklist = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := db.ExecContext(ctx, query,
		store.ID,
		store.SupplierID,
		store.Name,
		store.City,
		store.State,
		nullString(store.Address),
		string(store.InstallationStatus),
		string(checklistJSON),
		store.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return outbound.ErrSupplierNotFound
		}
		return fmt.Errorf("failed to update store: %w", err)
	}
	return expectAffected(result, outbound.ErrStoreNotFound)
}

func (r *StoreRepositoryAdapter) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}
	return expectAffected(result, outbound.ErrStoreNotFound)
}

func (r *StoreRepositoryAdapter) FindAll(ctx context.Context, offset, limit int, filters outbound.StoreFilters) ([]*entity.Store, int, error) {
	where := newWhere()
	if filters.SupplierID != "" {
		where.add("supplier_id = ?", filters.SupplierID)
	}
	if filters.InstallationStatus != "" {
		where.add("installation_status = ?", filters.InstallationStatus)
	}
	if filters.State != "" {
		where.add("state = ?", filters.State)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM stores %s", where.clause())
	if err := r.db.QueryRowContext(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count stores: %w", err)
	}

	pageClause, args := where.page(limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM stores %s ORDER BY created_at DESC %s`, storeColumns, where.clause(), pageClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	stores := []*entity.Store{}
	for rows.Next() {
		store, err := scanStore(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, store)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate stores: %w", err)
	}

	return stores, total, nil
}
