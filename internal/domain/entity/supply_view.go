package entity

import "github.com/shopspring/decimal"

// OrganizerInfo datos mínimos de una organización dentro de una respuesta de pedido.
type OrganizerInfo struct {
	ID   int64
	Name string
}

// SupplyProductDetail línea de pedido con los datos de catálogo de la versión comprada.
type SupplyProductDetail struct {
	ProductID        int64
	ProductVersionID int64
	Article          int64
	Name             string
	Category         Category
	Price            decimal.Decimal
	Quantity         int64
}

// SupplySummary vista de un pedido para listados: cabecera + organizaciones + líneas.
type SupplySummary struct {
	ID              int64
	Article         int64
	Supplier        OrganizerInfo
	Company         OrganizerInfo
	Status          SupplyStatus
	IsWaitConfirm   bool
	DeliveryAddress string
	TotalPrice      decimal.Decimal
	Products        []SupplyProductDetail
}
