package usecase

import (
	"context"

	"github.com/tu-usuario/suministros-api/internal/domain"
	"github.com/tu-usuario/suministros-api/internal/domain/entity"
	"github.com/tu-usuario/suministros-api/internal/domain/repository"
)

// StockUseCase vistas de los dos ledgers y el ajuste manual del proveedor.
// Las mutaciones del ciclo de vida (reservar, liberar, confirmar, acreditar)
// viven en el caso de uso de pedidos, nunca aquí.
type StockUseCase struct {
	supplierStockRepo repository.SupplierStockRepository
	companyStockRepo  repository.CompanyStockRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(supplierStockRepo repository.SupplierStockRepository, companyStockRepo repository.CompanyStockRepository) *StockUseCase {
	return &StockUseCase{supplierStockRepo: supplierStockRepo, companyStockRepo: companyStockRepo}
}

// ListSupplier bodega del proveedor con quantity, reserved y disponible.
func (uc *StockUseCase) ListSupplier(ctx context.Context, supplierID int64) ([]entity.SupplierStockInfo, error) {
	return uc.supplierStockRepo.ListBySupplier(supplierID)
}

// ListCompany stock adoptado por la compañía, por versión de producto.
func (uc *StockUseCase) ListCompany(ctx context.Context, companyID int64) ([]entity.CompanyStockInfo, error) {
	return uc.companyStockRepo.ListByCompany(companyID)
}

// UpdateQuantity ajuste manual de bodega. El update condicional rechaza
// cantidades por debajo de lo ya reservado.
func (uc *StockUseCase) UpdateQuantity(ctx context.Context, supplierID, productID, quantity int64) error {
	if quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	return uc.supplierStockRepo.UpdateQuantity(supplierID, productID, quantity)
}
