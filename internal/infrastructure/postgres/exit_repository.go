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

var _ repository.ExitRepository = (*ExitRepo)(nil)

// ExitRepo salidas de producto sobre PostgreSQL (usable con pool o tx).
type ExitRepo struct {
	q Querier
}

// NewExitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExitRepository(q Querier) *ExitRepo {
	return &ExitRepo{q: q}
}

func exitSelect() squirrel.SelectBuilder {
	return psql.Select(
		"x.id", "x.product_id", "x.quantity", "x.movement_date", "x.reason", "x.customer",
		"x.note", "x.created_at", "x.updated_at", "p.name",
	).From("product_exits x").
		Join("products p ON p.id = x.product_id")
}

func scanExit(row pgx.Row) (*entity.Exit, error) {
	var x entity.Exit
	err := row.Scan(
		&x.ID, &x.ProductID, &x.Quantity, &x.MovementDate, &x.Reason, &x.Customer,
		&x.Note, &x.CreatedAt, &x.UpdatedAt, &x.ProductName,
	)
	if err != nil {
		return nil, err
	}
	return &x, nil
}

func (r *ExitRepo) Create(ctx context.Context, exit *entity.Exit) error {
	query := `
		INSERT INTO product_exits (id, product_id, quantity, movement_date, reason, customer, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		exit.ID, exit.ProductID, exit.Quantity, exit.MovementDate, exit.Reason, exit.Customer,
		exit.Note, exit.CreatedAt, exit.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert exit: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert exit: %w", err)
	}
	return nil
}

func (r *ExitRepo) GetByID(ctx context.Context, id string) (*entity.Exit, error) {
	if !validID(id) {
		return nil, nil
	}
	query, args, err := exitSelect().Where(squirrel.Eq{"x.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get exit: %w", err)
	}
	x, err := scanExit(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exit: %w", err)
	}
	return x, nil
}

func (r *ExitRepo) Update(ctx context.Context, exit *entity.Exit) error {
	query := `
		UPDATE product_exits
		SET product_id = $2, quantity = $3, movement_date = $4, reason = $5, customer = $6, note = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		exit.ID, exit.ProductID, exit.Quantity, exit.MovementDate, exit.Reason, exit.Customer,
		exit.Note, exit.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("update exit: %w", domain.ErrConflict)
		}
		return fmt.Errorf("update exit: %w", err)
	}
	return nil
}

func (r *ExitRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM product_exits WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete exit: %w", err)
	}
	return nil
}

// List salidas más recientes primero. SupplierID no aplica.
func (r *ExitRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Exit, int, error) {
	if filter.ProductID != "" && !validID(filter.ProductID) {
		return []*entity.Exit{}, 0, nil
	}
	conds := movementConds("x", filter)

	total, err := countMovements(ctx, r.q, "product_exits x", conds)
	if err != nil {
		return nil, 0, fmt.Errorf("count exits: %w", err)
	}

	qb := exitSelect().Where(conds).OrderBy("x.movement_date DESC", "x.created_at DESC")
	query, args, err := limitOffset(qb, filter.Limit, filter.Offset).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list exits: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list exits: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Exit, 0)
	for rows.Next() {
		x, err := scanExit(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan exit: %w", err)
		}
		list = append(list, x)
	}
	return list, total, rows.Err()
}
