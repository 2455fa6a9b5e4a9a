package repository

import "github.com/tu-usuario/suministros-api/internal/domain/entity"

// SupplyListFilter filtros para el listado de pedidos de un organizador.
// CompanyID o SupplierID exactamente uno distinto de cero según el rol.
type SupplyListFilter struct {
	CompanyID     int64
	SupplierID    int64
	IsWaitConfirm *bool
	Limit         int
}

// SupplyRepository puerto de persistencia para la cabecera del pedido.
// Las transiciones de status/is_wait_confirm pasan por UpdateStatus con el
// supplier_id en el WHERE: la propiedad se verifica en la misma sentencia.
type SupplyRepository interface {
	Create(supply *entity.Supply) error
	GetByID(id int64) (*entity.Supply, error)
	ExistsByArticle(article int64) (bool, error)
	// UpdateStatus escribe status + is_wait_confirm si el pedido pertenece al
	// proveedor. Devuelve false si no afectó ninguna fila.
	UpdateStatus(supplyID, supplierID int64, status entity.SupplyStatus, isWaitConfirm bool) (bool, error)
	List(filter SupplyListFilter) ([]entity.SupplySummary, error)
	Delete(id int64) error
}

// SupplyProductRepository puerto de persistencia para las líneas de pedido.
type SupplyProductRepository interface {
	CreateAll(items []entity.SupplyProduct) error
	ListBySupply(supplyID int64) ([]entity.SupplyProduct, error)
}
