package supply

import (
	"context"

	"github.com/tu-usuario/suministros-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de pedidos:
// cabecera, líneas y mutaciones de ambos ledgers se confirman o revierten juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		supplyRepo repository.SupplyRepository,
		lineRepo repository.SupplyProductRepository,
		supplierStockRepo repository.SupplierStockRepository,
		companyStockRepo repository.CompanyStockRepository,
		productRepo repository.ProductRepository,
	) error) error
}
