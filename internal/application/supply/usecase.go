package supply

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/suministros-api/internal/domain"
	"github.com/tu-usuario/suministros-api/internal/domain/entity"
	"github.com/tu-usuario/suministros-api/internal/domain/repository"
	"github.com/tu-usuario/suministros-api/pkg/article"
)

// UseCase motor del ciclo de vida del pedido de suministro.
//
// Es el único dueño de las transiciones de Supply.Status/IsWaitConfirm y de las
// mutaciones emparejadas de los dos ledgers de stock; cada operación corre en
// una transacción (TxRunner) y es todo-o-nada.
type UseCase struct {
	txRunner      TxRunner
	contractRepo  repository.ContractRepository
	supplyRepo    repository.SupplyRepository
	organizerRepo repository.OrganizerRepository
}

// NewUseCase construye el motor de pedidos.
func NewUseCase(
	txRunner TxRunner,
	contractRepo repository.ContractRepository,
	supplyRepo repository.SupplyRepository,
	organizerRepo repository.OrganizerRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		contractRepo:  contractRepo,
		supplyRepo:    supplyRepo,
		organizerRepo: organizerRepo,
	}
}

// LineInput línea solicitada por la compañía: producto físico + cantidad.
type LineInput struct {
	ProductID int64
	Quantity  int64
}

// CreateInput entrada para crear un pedido de suministro.
type CreateInput struct {
	SupplierID      int64
	DeliveryAddress string
	TotalPrice      decimal.Decimal
	Lines           []LineInput
}

// Create crea un pedido en estado in_processing y reserva el stock del
// proveedor línea por línea.
//
// Orden del algoritmo: (1) compuerta de contrato, (2) resolver producto ->
// versión vigente preservando el orden de entrada (el emparejamiento con las
// cantidades es posicional), (3) artículo único con chequeo de colisión,
// (4) persistir cabecera + líneas, (5) reservar por el product id ORIGINAL:
// la reserva es sobre el producto físico, el versionado del catálogo es
// cosmético para el proveedor.
func (uc *UseCase) Create(ctx context.Context, companyID int64, input CreateInput) (*entity.Supply, error) {
	if companyID <= 0 || input.SupplierID <= 0 || input.DeliveryAddress == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range input.Lines {
		if line.ProductID <= 0 || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	exists, err := uc.contractRepo.Exists(companyID, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrContractNotFound
	}

	var created *entity.Supply
	err = uc.txRunner.Run(ctx, func(
		supplyRepo repository.SupplyRepository,
		lineRepo repository.SupplyProductRepository,
		supplierStockRepo repository.SupplierStockRepository,
		_ repository.CompanyStockRepository,
		productRepo repository.ProductRepository,
	) error {
		productIDs := make([]int64, len(input.Lines))
		for i, line := range input.Lines {
			productIDs[i] = line.ProductID
		}
		versionIDs, err := productRepo.ResolveVersionIDs(productIDs)
		if err != nil {
			return err
		}

		art, err := article.Generate(supplyRepo.ExistsByArticle)
		if err != nil {
			return err
		}

		supply := &entity.Supply{
			Article:         art,
			SupplierID:      input.SupplierID,
			CompanyID:       companyID,
			Status:          entity.StatusInProcessing,
			IsWaitConfirm:   true,
			DeliveryAddress: input.DeliveryAddress,
			TotalPrice:      input.TotalPrice,
		}
		if err := supplyRepo.Create(supply); err != nil {
			return err
		}

		lines := make([]entity.SupplyProduct, len(input.Lines))
		for i, line := range input.Lines {
			lines[i] = entity.SupplyProduct{
				SupplyID:         supply.ID,
				ProductVersionID: versionIDs[i],
				Quantity:         line.Quantity,
			}
		}
		if err := lineRepo.CreateAll(lines); err != nil {
			return err
		}

		for _, line := range input.Lines {
			if err := supplierStockRepo.Reserve(input.SupplierID, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		created = supply
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AssembleOrCancel decisión del proveedor sobre un pedido recién creado:
// assemble confirma el armado (las unidades salen de la bodega: Commit por
// línea), cancel lo descarta (solo se libera la reserva: Release por línea).
// Solo válido mientras el pedido sigue in_processing; una segunda llamada
// encuentra el estado ya resuelto y devuelve ErrConflict sin tocar ledgers.
func (uc *UseCase) AssembleOrCancel(ctx context.Context, supplierID, supplyID int64, decision entity.Decision) error {
	if !decision.Valid() {
		return domain.ErrInvalidInput
	}

	return uc.txRunner.Run(ctx, func(
		supplyRepo repository.SupplyRepository,
		lineRepo repository.SupplyProductRepository,
		supplierStockRepo repository.SupplierStockRepository,
		_ repository.CompanyStockRepository,
		productRepo repository.ProductRepository,
	) error {
		supply, err := supplyRepo.GetByID(supplyID)
		if err != nil {
			return err
		}
		if supply == nil {
			return domain.ErrNotFound
		}
		if supply.SupplierID != supplierID {
			return domain.ErrForbidden
		}
		if supply.Status != entity.StatusInProcessing || !supply.IsWaitConfirm {
			return domain.ErrConflict
		}

		ok, err := supplyRepo.UpdateStatus(supplyID, supplierID, decision.Status(), false)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}

		lines, err := lineRepo.ListBySupply(supplyID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			// La reserva vive sobre el producto físico: lookup inverso
			// versión -> producto dueño antes de tocar el ledger.
			product, err := productRepo.ProductForVersion(line.ProductVersionID)
			if err != nil {
				return err
			}
			if decision == entity.DecisionAssemble {
				err = supplierStockRepo.Commit(supply.SupplierID, product.ID, line.Quantity)
			} else {
				err = supplierStockRepo.Release(supply.SupplierID, product.ID, line.Quantity)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateStatus avance genérico del pedido por los estados de entrega:
// assembled -> in_delivery -> delivered -> adopted. Rechaza con ErrConflict
// los estados custodiados: pendiente de confirmación del proveedor,
// cancelado o ya adoptado. Al llegar a adopted acredita el stock de la
// compañía por la versión exacta de cada línea.
func (uc *UseCase) UpdateStatus(ctx context.Context, supplierID, supplyID int64, newStatus entity.SupplyStatus) (*entity.Supply, error) {
	switch newStatus {
	case entity.StatusInDelivery, entity.StatusDelivered, entity.StatusAdopted:
	default:
		// in_processing nunca se restablece; assembled/cancelled solo vía decisión.
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Supply
	err := uc.txRunner.Run(ctx, func(
		supplyRepo repository.SupplyRepository,
		lineRepo repository.SupplyProductRepository,
		_ repository.SupplierStockRepository,
		companyStockRepo repository.CompanyStockRepository,
		_ repository.ProductRepository,
	) error {
		supply, err := supplyRepo.GetByID(supplyID)
		if err != nil {
			return err
		}
		if supply == nil {
			return domain.ErrNotFound
		}
		if supply.SupplierID != supplierID {
			return domain.ErrForbidden
		}
		if supply.IsWaitConfirm || supply.Status.Terminal() {
			return domain.ErrConflict
		}
		if !validTransition(supply.Status, newStatus) {
			return domain.ErrConflict
		}

		ok, err := supplyRepo.UpdateStatus(supplyID, supplierID, newStatus, false)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}

		if newStatus == entity.StatusAdopted {
			lines, err := lineRepo.ListBySupply(supplyID)
			if err != nil {
				return err
			}
			for _, line := range lines {
				if err := companyStockRepo.Credit(supply.CompanyID, line.ProductVersionID, line.Quantity); err != nil {
					return err
				}
			}
		}

		supply.Status = newStatus
		supply.IsWaitConfirm = false
		updated = supply
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// validTransition valida el avance por la ruta de entrega. adopted se acepta
// desde cualquier estado no terminal ya confirmado (la compañía puede adoptar
// sin registrar cada salto intermedio).
func validTransition(from, to entity.SupplyStatus) bool {
	switch to {
	case entity.StatusInDelivery:
		return from == entity.StatusAssembled
	case entity.StatusDelivered:
		return from == entity.StatusInDelivery
	case entity.StatusAdopted:
		return !from.Terminal()
	}
	return false
}

// ListByUser pedidos visibles para el organizador autenticado: el proveedor ve
// sus ventas, la compañía sus compras.
func (uc *UseCase) ListByUser(ctx context.Context, userData entity.UserData, isWaitConfirm *bool, limit int) ([]entity.SupplySummary, error) {
	if limit <= 0 {
		limit = 100
	}
	filter := repository.SupplyListFilter{IsWaitConfirm: isWaitConfirm, Limit: limit}
	switch userData.OrganizerRole {
	case entity.RoleSupplier:
		filter.SupplierID = userData.OrganizerID
	case entity.RoleCompany:
		filter.CompanyID = userData.OrganizerID
	default:
		return nil, domain.ErrForbidden
	}
	return uc.supplyRepo.List(filter)
}

// Delete borrado operativo de un pedido, sin reglas de negocio. No libera
// reservas: es una válvula de escape para limpieza manual.
func (uc *UseCase) Delete(ctx context.Context, supplyID int64) error {
	return uc.txRunner.Run(ctx, func(
		supplyRepo repository.SupplyRepository,
		_ repository.SupplyProductRepository,
		_ repository.SupplierStockRepository,
		_ repository.CompanyStockRepository,
		_ repository.ProductRepository,
	) error {
		return supplyRepo.Delete(supplyID)
	})
}
