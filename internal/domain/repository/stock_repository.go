package repository

import "github.com/tu-usuario/suministros-api/internal/domain/entity"

// SupplierStockRepository puerto del ledger de stock del proveedor.
//
// Reserve, Release y Commit deben ser updates condicionales atómicos en el
// almacenamiento (una sola sentencia que verifica y muta): dos reservas
// concurrentes sobre la misma fila no pueden leer-modificar-escribir por
// separado. El invariante 0 <= reserved <= quantity se rechaza en la propia
// sentencia, nunca después del hecho.
type SupplierStockRepository interface {
	Create(stock *entity.SupplierStock) error
	GetBySupplierAndProduct(supplierID, productID int64) (*entity.SupplierStock, error)
	// Reserve aparta amount unidades. ErrOverReserved si reserved+amount > quantity,
	// ErrNotFound si la fila no existe.
	Reserve(supplierID, productID, amount int64) error
	// Release libera amount unidades reservadas. ErrInvalidQuantity si dejaría
	// reserved negativo.
	Release(supplierID, productID, amount int64) error
	// Commit descuenta amount de reserved y de quantity a la vez: las unidades
	// salen físicamente de la bodega al armar el pedido.
	Commit(supplierID, productID, amount int64) error
	// UpdateQuantity ajuste manual del proveedor; rechaza cantidades por debajo
	// de lo ya reservado.
	UpdateQuantity(supplierID, productID, quantity int64) error
	ListBySupplier(supplierID int64) ([]entity.SupplierStockInfo, error)
	DeleteByProduct(productID int64) error
}

// CompanyStockRepository puerto del ledger de stock de la compañía.
type CompanyStockRepository interface {
	// Credit crea la fila (company_id, product_version_id) con quantity=amount
	// o incrementa la existente. Rechaza amount <= 0 con ErrInvalidQuantity.
	Credit(companyID, productVersionID, amount int64) error
	GetByCompanyAndVersion(companyID, productVersionID int64) (*entity.CompanyStock, error)
	ListByCompany(companyID int64) ([]entity.CompanyStockInfo, error)
}
