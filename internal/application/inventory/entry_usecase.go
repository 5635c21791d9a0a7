package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/validation"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// EntryUseCase registra, edita y elimina entradas de producto manteniendo el stock
// sincronizado. Cada operación corre en una sola transacción; el efecto en el stock lo
// aplican los listeners del EventPublisher dentro de esa misma transacción.
type EntryUseCase struct {
	txRunner TxRunner
	entries  repository.EntryRepository
	events   EventPublisher
	clock    inventory.Clock
}

// NewEntryUseCase construye el caso de uso.
func NewEntryUseCase(txRunner TxRunner, entries repository.EntryRepository, events EventPublisher, clock inventory.Clock) *EntryUseCase {
	if clock == nil {
		clock = inventory.SystemClock{}
	}
	return &EntryUseCase{txRunner: txRunner, entries: entries, events: events, clock: clock}
}

// Create valida la entrada, acredita el stock del producto y persiste ambos. Un producto o
// proveedor con id que no existe es ErrNotFound; sin id, ErrReferenceMissing.
func (uc *EntryUseCase) Create(ctx context.Context, in dto.EntryRequest) (*dto.EntryResponse, error) {
	var created *entity.Entry
	err := uc.txRunner.Run(ctx, func(ctx context.Context, r TxRepos) error {
		products, err := lockProducts(ctx, r.Products, in.ProductID)
		if err != nil {
			return err
		}
		product := products[in.ProductID]
		if err := unresolved("producto", in.ProductID, product != nil); err != nil {
			return err
		}
		supplier, err := uc.resolveSupplier(ctx, r.Suppliers, in.SupplierID)
		if err != nil {
			return err
		}
		if product != nil {
			if err := unresolved("proveedor", in.SupplierID, supplier != nil); err != nil {
				return err
			}
		}

		now := uc.clock.Now()
		proposal := inventory.Proposal{
			Direction: entity.DirectionIn,
			Product:   product,
			Supplier:  supplier,
			Quantity:  quantityOf(in.Quantity),
			Date:      parseMovementDate(in.MovementDate),
		}
		if err := inventory.Validate(proposal, now); err != nil {
			return err
		}
		if err := validation.Struct(in); err != nil {
			return err
		}

		entry := &entity.Entry{
			MovementBase: entity.MovementBase{
				ID:           uuid.New().String(),
				ProductID:    product.ID,
				Quantity:     proposal.Quantity,
				MovementDate: proposal.Date,
				Note:         in.Note,
				CreatedAt:    now,
				UpdatedAt:    now,
				ProductName:  product.Name,
			},
			SupplierID:   supplier.ID,
			UnitCost:     in.UnitCost,
			SupplierName: supplier.Name,
		}

		ledger := inventory.NewLedger()
		if err := uc.events.Publish(ctx, StockEvent{Kind: EventStockApplied, Movement: entry, Product: product, Ledger: ledger}); err != nil {
			return err
		}
		if err := r.Entries.Create(ctx, entry); err != nil {
			return err
		}
		if err := persistTouched(ctx, r.Products, ledger); err != nil {
			return err
		}
		created = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toEntryResponse(created), nil
}

// Update revierte el efecto de la entrada original, valida el nuevo estado contra el stock
// ya revertido y aplica el nuevo efecto. Si el producto no cambia, reversión y aplicación
// operan sobre la misma instancia.
func (uc *EntryUseCase) Update(ctx context.Context, id string, in dto.EntryRequest) (*dto.EntryResponse, error) {
	var updated *entity.Entry
	err := uc.txRunner.Run(ctx, func(ctx context.Context, r TxRepos) error {
		old, err := r.Entries.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return fmt.Errorf("%w: entrada %s", domain.ErrNotFound, id)
		}

		products, err := lockProducts(ctx, r.Products, old.ProductID, in.ProductID)
		if err != nil {
			return err
		}
		product := products[in.ProductID]
		if product == nil {
			return fmt.Errorf("%w: producto", domain.ErrReferenceMissing)
		}
		supplier, err := uc.resolveSupplier(ctx, r.Suppliers, in.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return fmt.Errorf("%w: proveedor", domain.ErrReferenceMissing)
		}
		oldProduct := products[old.ProductID]
		if oldProduct == nil {
			return fmt.Errorf("%w: producto %s de la entrada", domain.ErrNotFound, old.ProductID)
		}

		ledger := inventory.NewLedger()
		if err := uc.events.Publish(ctx, StockEvent{Kind: EventStockReversed, Movement: old, Product: oldProduct, Ledger: ledger}); err != nil {
			return err
		}

		now := uc.clock.Now()
		proposal := inventory.Proposal{
			Direction: entity.DirectionIn,
			Product:   product,
			Supplier:  supplier,
			Quantity:  quantityOf(in.Quantity),
			Date:      parseMovementDate(in.MovementDate),
		}
		if err := inventory.Validate(proposal, now); err != nil {
			return err
		}
		if err := validation.Struct(in); err != nil {
			return err
		}

		next := *old
		next.ProductID = product.ID
		next.ProductName = product.Name
		next.SupplierID = supplier.ID
		next.SupplierName = supplier.Name
		next.Quantity = proposal.Quantity
		next.MovementDate = proposal.Date
		next.UnitCost = in.UnitCost
		next.Note = in.Note
		next.UpdatedAt = now

		if err := uc.events.Publish(ctx, StockEvent{Kind: EventStockApplied, Movement: &next, Product: product, Ledger: ledger}); err != nil {
			return err
		}
		if err := r.Entries.Update(ctx, &next); err != nil {
			return err
		}
		if err := persistTouched(ctx, r.Products, ledger); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toEntryResponse(updated), nil
}

// Delete revierte el efecto de la entrada y la elimina. Falla con stock insuficiente si parte
// de lo que entró ya salió.
func (uc *EntryUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(ctx context.Context, r TxRepos) error {
		old, err := r.Entries.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return fmt.Errorf("%w: entrada %s", domain.ErrNotFound, id)
		}
		products, err := lockProducts(ctx, r.Products, old.ProductID)
		if err != nil {
			return err
		}
		ledger := inventory.NewLedger()
		if err := uc.events.Publish(ctx, StockEvent{Kind: EventStockReversed, Movement: old, Product: products[old.ProductID], Ledger: ledger}); err != nil {
			return err
		}
		if err := persistTouched(ctx, r.Products, ledger); err != nil {
			return err
		}
		return r.Entries.Delete(ctx, id)
	})
}

// GetByID obtiene una entrada. Devuelve (nil, nil) si no existe.
func (uc *EntryUseCase) GetByID(ctx context.Context, id string) (*dto.EntryResponse, error) {
	e, err := uc.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	return toEntryResponse(e), nil
}

// List lista entradas con filtros y paginación.
func (uc *EntryUseCase) List(ctx context.Context, q dto.MovementListQuery) (*dto.EntryListResponse, error) {
	filter, err := movementFilter(q)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.entries.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEntryResponse(e))
	}
	return &dto.EntryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

func (uc *EntryUseCase) resolveSupplier(ctx context.Context, repo repository.SupplierRepository, id string) (*entity.Supplier, error) {
	if id == "" {
		return nil, nil
	}
	return repo.GetByID(ctx, id)
}

func toEntryResponse(e *entity.Entry) *dto.EntryResponse {
	if e == nil {
		return nil
	}
	return &dto.EntryResponse{
		ID:           e.ID,
		ProductID:    e.ProductID,
		ProductName:  e.ProductName,
		SupplierID:   e.SupplierID,
		SupplierName: e.SupplierName,
		Quantity:     e.Quantity,
		MovementDate: e.MovementDate.Format(dto.DateLayout),
		UnitCost:     e.UnitCost,
		TotalValue:   e.TotalValue(),
		Note:         e.Note,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
