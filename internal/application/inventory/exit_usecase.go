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

// ExitUseCase registra, edita y elimina salidas de producto. Mismo esquema transaccional que
// EntryUseCase, con la regla adicional de stock suficiente.
type ExitUseCase struct {
	txRunner TxRunner
	exits    repository.ExitRepository
	events   EventPublisher
	clock    inventory.Clock
}

// NewExitUseCase construye el caso de uso.
func NewExitUseCase(txRunner TxRunner, exits repository.ExitRepository, events EventPublisher, clock inventory.Clock) *ExitUseCase {
	if clock == nil {
		clock = inventory.SystemClock{}
	}
	return &ExitUseCase{txRunner: txRunner, exits: exits, events: events, clock: clock}
}

// Create valida la salida contra el stock actual, debita el producto y persiste ambos.
func (uc *ExitUseCase) Create(ctx context.Context, in dto.ExitRequest) (*dto.ExitResponse, error) {
	var created *entity.Exit
	err := uc.txRunner.Run(ctx, func(ctx context.Context, r TxRepos) error {
		products, err := lockProducts(ctx, r.Products, in.ProductID)
		if err != nil {
			return err
		}
		product := products[in.ProductID]
		if err := unresolved("producto", in.ProductID, product != nil); err != nil {
			return err
		}

		now := uc.clock.Now()
		proposal := inventory.Proposal{
			Direction: entity.DirectionOut,
			Product:   product,
			Quantity:  quantityOf(in.Quantity),
			Date:      parseMovementDate(in.MovementDate),
		}
		if err := inventory.Validate(proposal, now); err != nil {
			return err
		}
		if err := validation.Struct(in); err != nil {
			return err
		}

		exit := &entity.Exit{
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
			Reason:   in.Reason,
			Customer: in.Customer,
		}

		ledger := inventory.NewLedger()
		if err := uc.events.Publish(ctx, StockEvent{Kind: EventStockApplied, Movement: exit, Product: product, Ledger: ledger}); err != nil {
			return err
		}
		if err := r.Exits.Create(ctx, exit); err != nil {
			return err
		}
		if err := persistTouched(ctx, r.Products, ledger); err != nil {
			return err
		}
		created = exit
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toExitResponse(created), nil
}

// Update devuelve al stock la cantidad de la salida original, valida la nueva salida contra ese
// stock revertido y debita la nueva cantidad. Todo o nada.
func (uc *ExitUseCase) Update(ctx context.Context, id string, in dto.ExitRequest) (*dto.ExitResponse, error) {
	var updated *entity.Exit
	err := uc.txRunner.Run(ctx, func(ctx context.Context, r TxRepos) error {
		old, err := r.Exits.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return fmt.Errorf("%w: salida %s", domain.ErrNotFound, id)
		}

		products, err := lockProducts(ctx, r.Products, old.ProductID, in.ProductID)
		if err != nil {
			return err
		}
		product := products[in.ProductID]
		if product == nil {
			return fmt.Errorf("%w: producto", domain.ErrReferenceMissing)
		}
		oldProduct := products[old.ProductID]
		if oldProduct == nil {
			return fmt.Errorf("%w: producto %s de la salida", domain.ErrNotFound, old.ProductID)
		}

		ledger := inventory.NewLedger()
		if err := uc.events.Publish(ctx, StockEvent{Kind: EventStockReversed, Movement: old, Product: oldProduct, Ledger: ledger}); err != nil {
			return err
		}

		now := uc.clock.Now()
		proposal := inventory.Proposal{
			Direction: entity.DirectionOut,
			Product:   product,
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
		next.Quantity = proposal.Quantity
		next.MovementDate = proposal.Date
		next.Reason = in.Reason
		next.Customer = in.Customer
		next.Note = in.Note
		next.UpdatedAt = now

		if err := uc.events.Publish(ctx, StockEvent{Kind: EventStockApplied, Movement: &next, Product: product, Ledger: ledger}); err != nil {
			return err
		}
		if err := r.Exits.Update(ctx, &next); err != nil {
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
	return toExitResponse(updated), nil
}

// Delete devuelve la cantidad al stock y elimina la salida.
func (uc *ExitUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(ctx context.Context, r TxRepos) error {
		old, err := r.Exits.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return fmt.Errorf("%w: salida %s", domain.ErrNotFound, id)
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
		return r.Exits.Delete(ctx, id)
	})
}

// GetByID obtiene una salida. Devuelve (nil, nil) si no existe.
func (uc *ExitUseCase) GetByID(ctx context.Context, id string) (*dto.ExitResponse, error) {
	x, err := uc.exits.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if x == nil {
		return nil, nil
	}
	return toExitResponse(x), nil
}

// List lista salidas con filtros y paginación.
func (uc *ExitUseCase) List(ctx context.Context, q dto.MovementListQuery) (*dto.ExitListResponse, error) {
	q.SupplierID = ""
	filter, err := movementFilter(q)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.exits.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExitResponse, 0, len(list))
	for _, x := range list {
		items = append(items, *toExitResponse(x))
	}
	return &dto.ExitListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

func toExitResponse(x *entity.Exit) *dto.ExitResponse {
	if x == nil {
		return nil
	}
	return &dto.ExitResponse{
		ID:           x.ID,
		ProductID:    x.ProductID,
		ProductName:  x.ProductName,
		Quantity:     x.Quantity,
		MovementDate: x.MovementDate.Format(dto.DateLayout),
		Reason:       x.Reason,
		Customer:     x.Customer,
		Note:         x.Note,
		CreatedAt:    x.CreatedAt,
		UpdatedAt:    x.UpdatedAt,
	}
}
