package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo entradas de producto sobre PostgreSQL (usable con pool o tx).
type EntryRepo struct {
	q Querier
}

// NewEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

func entrySelect() squirrel.SelectBuilder {
	return psql.Select(
		"e.id", "e.product_id", "e.supplier_id", "e.quantity", "e.movement_date", "e.unit_cost",
		"e.note", "e.created_at", "e.updated_at", "p.name", "s.name",
	).From("product_entries e").
		Join("products p ON p.id = e.product_id").
		Join("suppliers s ON s.id = e.supplier_id")
}

func scanEntry(row pgx.Row) (*entity.Entry, error) {
	var e entity.Entry
	err := row.Scan(
		&e.ID, &e.ProductID, &e.SupplierID, &e.Quantity, &e.MovementDate, &e.UnitCost,
		&e.Note, &e.CreatedAt, &e.UpdatedAt, &e.ProductName, &e.SupplierName,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste una entrada. Producto o proveedor inexistente (23503) devuelve ErrConflict.
func (r *EntryRepo) Create(ctx context.Context, entry *entity.Entry) error {
	query := `
		INSERT INTO product_entries (id, product_id, supplier_id, quantity, movement_date, unit_cost, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.ProductID, entry.SupplierID, entry.Quantity, entry.MovementDate,
		entry.UnitCost, entry.Note, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert entry: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada con los nombres de producto y proveedor.
func (r *EntryRepo) GetByID(ctx context.Context, id string) (*entity.Entry, error) {
	if !validID(id) {
		return nil, nil
	}
	query, args, err := entrySelect().Where(squirrel.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get entry: %w", err)
	}
	e, err := scanEntry(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// Update reescribe todos los campos editables de la entrada.
func (r *EntryRepo) Update(ctx context.Context, entry *entity.Entry) error {
	query := `
		UPDATE product_entries
		SET product_id = $2, supplier_id = $3, quantity = $4, movement_date = $5, unit_cost = $6, note = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.ProductID, entry.SupplierID, entry.Quantity, entry.MovementDate,
		entry.UnitCost, entry.Note, entry.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("update entry: %w", domain.ErrConflict)
		}
		return fmt.Errorf("update entry: %w", err)
	}
	return nil
}

func (r *EntryRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM product_entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// List entradas más recientes primero, con filtros opcionales.
func (r *EntryRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Entry, int, error) {
	conds := movementConds("e", filter)
	if filter.SupplierID != "" {
		if !validID(filter.SupplierID) {
			return []*entity.Entry{}, 0, nil
		}
		conds = append(conds, squirrel.Eq{"e.supplier_id": filter.SupplierID})
	}
	if filter.ProductID != "" && !validID(filter.ProductID) {
		return []*entity.Entry{}, 0, nil
	}

	total, err := countMovements(ctx, r.q, "product_entries e", conds)
	if err != nil {
		return nil, 0, fmt.Errorf("count entries: %w", err)
	}

	qb := entrySelect().Where(conds).OrderBy("e.movement_date DESC", "e.created_at DESC")
	query, args, err := limitOffset(qb, filter.Limit, filter.Offset).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list entries: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan entry: %w", err)
		}
		list = append(list, e)
	}
	return list, total, rows.Err()
}

// movementConds arma los filtros comunes de entradas y salidas sobre el alias indicado.
func movementConds(alias string, f repository.MovementFilter) squirrel.And {
	conds := squirrel.And{squirrel.Expr("TRUE")}
	if f.ProductID != "" {
		conds = append(conds, squirrel.Eq{alias + ".product_id": f.ProductID})
	}
	if f.From != nil {
		conds = append(conds, squirrel.GtOrEq{alias + ".movement_date": *f.From})
	}
	if f.To != nil {
		conds = append(conds, squirrel.LtOrEq{alias + ".movement_date": *f.To})
	}
	return conds
}

func countMovements(ctx context.Context, q Querier, from string, conds squirrel.And) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From(from).Where(conds).ToSql()
	if err != nil {
		return 0, err
	}
	var total int
	if err := q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
