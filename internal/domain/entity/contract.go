package entity

import "time"

// Contract relación comercial compañía↔proveedor. Su existencia es la
// compuerta booleana para poder crear pedidos contra ese proveedor.
type Contract struct {
	ID         int64
	CompanyID  int64
	SupplierID int64
	CreatedAt  time.Time
}
