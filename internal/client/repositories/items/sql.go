package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophinventory/internal/client/models"
	"github.com/dmitrijs2005/gophinventory/internal/common"
	"github.com/dmitrijs2005/gophinventory/internal/dbx"
)

const columns = `id, name, price, quantity, supplier_name, supplier_email, supplier_phone, data_source`

// SQLRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
// Queries are written with '?' placeholders and rebound for the dialect.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

// NewSQLRepository returns a repository speaking the given dialect.
func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

// NewSQLiteRepository returns a repository for the local SQLite file.
func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return NewSQLRepository(db, dbx.DialectSQLite)
}

// NewPostgresRepository returns a repository for a Postgres database.
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return NewSQLRepository(db, dbx.DialectPostgres)
}

func (r *SQLRepository) Insert(ctx context.Context, item models.Item) (int64, error) {
	query := r.dialect.Rebind(`INSERT INTO items
		(name, price, quantity, supplier_name, supplier_email, supplier_phone, data_source)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		item.Name, item.Price, item.Quantity,
		item.SupplierName, item.SupplierEmail, item.SupplierPhone,
		string(item.Provenance)).Scan(&id)
	if err != nil {
		return models.UnsavedID, fmt.Errorf("failed to insert item: %w", err)
	}
	return id, nil
}

func (r *SQLRepository) Update(ctx context.Context, item models.Item) error {
	query := r.dialect.Rebind(`UPDATE items SET
		name = ?, price = ?, quantity = ?,
		supplier_name = ?, supplier_email = ?, supplier_phone = ?,
		data_source = ?
		WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query,
		item.Name, item.Price, item.Quantity,
		item.SupplierName, item.SupplierEmail, item.SupplierPhone,
		string(item.Provenance), item.ID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return expectOneRow(res)
}

func (r *SQLRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM items WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return expectOneRow(res)
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (models.Item, error) {
	query := r.dialect.Rebind(`SELECT ` + columns + ` FROM items WHERE id = ?`)

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, common.ErrorNotFound
		}
		return models.Item{}, fmt.Errorf("query row scan failed: %w", err)
	}
	return item, nil
}

func (r *SQLRepository) GetAll(ctx context.Context) ([]models.Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM items ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()

	var result []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item rows: %w", err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (models.Item, error) {
	var (
		item   models.Item
		source string
	)
	err := s.Scan(&item.ID, &item.Name, &item.Price, &item.Quantity,
		&item.SupplierName, &item.SupplierEmail, &item.SupplierPhone, &source)
	if err != nil {
		return models.Item{}, err
	}
	item.Provenance = models.Provenance(source)
	return item, nil
}

func expectOneRow(res sql.Result) error {
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	if ra != 1 {
		return fmt.Errorf("wrong rows affected count: %d", ra)
	}
	return nil
}
