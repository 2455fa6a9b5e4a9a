package entity

import "time"

// SupplierStock fila de stock del proveedor por producto físico.
// Invariante: 0 <= Reserved <= Quantity y Quantity >= 0. Las mutaciones las
// hace el ledger con updates condicionales atómicos; ningún otro componente
// escribe Reserved directamente.
type SupplierStock struct {
	ID         int64
	SupplierID int64
	ProductID  int64
	Quantity   int64 // unidades físicas en bodega
	Reserved   int64 // unidades apartadas por pedidos en vuelo
	UpdatedAt  time.Time
}

// Available unidades libres para nuevas reservas.
func (s SupplierStock) Available() int64 {
	return s.Quantity - s.Reserved
}

// SupplierStockInfo fila de stock del proveedor con los datos de catálogo
// del producto (vista para listados).
type SupplierStockInfo struct {
	ID          int64
	ProductID   int64
	Article     int64
	ProductName string
	Category    Category
	Description string
	Quantity    int64
	Reserved    int64
}

// CompanyStockInfo fila de stock de compañía con los datos de la versión
// recibida (vista para listados).
type CompanyStockInfo struct {
	ID               int64
	ProductVersionID int64
	ProductName      string
	Category         Category
	Description      string
	Quantity         int64
}

// CompanyStock fila de stock recibido por la compañía, por versión de producto:
// la compañía recibe "este snapshot exacto del catálogo", por eso se versiona
// mientras que el lado proveedor cuenta unidades físicas.
type CompanyStock struct {
	ID               int64
	CompanyID        int64
	ProductVersionID int64
	Quantity         int64
	UpdatedAt        time.Time
}
