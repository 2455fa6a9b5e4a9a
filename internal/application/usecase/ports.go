package usecase

import (
	"context"

	"github.com/tu-usuario/suministros-api/internal/domain/repository"
)

// CatalogTxRunner ejecuta una función dentro de una transacción con los
// repositorios de catálogo y stock del proveedor atados a esa tx. Lo usa el
// alta/actualización/borrado de productos: versión, producto y fila de stock
// se confirman o revierten juntos.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		versionRepo repository.ProductVersionRepository,
		supplierStockRepo repository.SupplierStockRepository,
	) error) error
}
