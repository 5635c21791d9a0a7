package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// lockProducts bloquea (SELECT FOR UPDATE) los productos indicados en orden de ID para que dos
// transacciones que tocan el mismo par no se bloqueen mutuamente. Un ID repetido devuelve la
// misma instancia; IDs vacíos o inexistentes quedan fuera del mapa.
func lockProducts(ctx context.Context, repo repository.ProductRepository, ids ...string) (map[string]*entity.Product, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	sort.Strings(unique)

	out := make(map[string]*entity.Product, len(unique))
	for _, id := range unique {
		p, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			out[id] = p
		}
	}
	return out, nil
}

// persistTouched guarda el stock de cada producto modificado por el libro.
func persistTouched(ctx context.Context, repo repository.ProductRepository, ledger *inventory.Ledger) error {
	for _, p := range ledger.Touched() {
		if err := repo.UpdateStock(ctx, p.ID, p.StockQuantity); err != nil {
			return err
		}
	}
	return nil
}

// parseMovementDate acepta YYYY-MM-DD o RFC3339. Vacío o ilegible devuelve la fecha cero,
// que la validación rechaza como fecha ausente.
func parseMovementDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(dto.DateLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return time.Time{}
}

// unresolved distingue una referencia ausente (id vacío, la reporta Validate) de un id que no
// existe, que es NotFound.
func unresolved(what, id string, found bool) error {
	if id != "" && !found {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, what, id)
	}
	return nil
}

func quantityOf(q *int) int {
	if q == nil {
		return 0
	}
	return *q
}

// movementFilter traduce la consulta HTTP al filtro del repositorio.
func movementFilter(q dto.MovementListQuery) (repository.MovementFilter, error) {
	q.Page.DefaultPage()
	f := repository.MovementFilter{
		ProductID:  q.ProductID,
		SupplierID: q.SupplierID,
		Limit:      q.Page.Limit,
		Offset:     q.Page.Offset,
	}
	if q.From != "" {
		t, err := time.Parse(dto.DateLayout, q.From)
		if err != nil {
			return f, fmt.Errorf("%w: from debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		f.From = &t
	}
	if q.To != "" {
		t, err := time.Parse(dto.DateLayout, q.To)
		if err != nil {
			return f, fmt.Errorf("%w: to debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		f.To = &t
	}
	return f, nil
}
