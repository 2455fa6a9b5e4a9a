package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplyStatus estado del pedido dentro de la máquina de estados.
type SupplyStatus string

const (
	StatusInProcessing SupplyStatus = "in_processing" // inicial, esperando decisión del proveedor
	StatusAssembled    SupplyStatus = "assembled"
	StatusCancelled    SupplyStatus = "cancelled" // terminal
	StatusInDelivery   SupplyStatus = "in_delivery"
	StatusDelivered    SupplyStatus = "delivered"
	StatusAdopted      SupplyStatus = "adopted" // terminal, acredita stock de compañía
)

// Valid indica si el estado pertenece al enum.
func (s SupplyStatus) Valid() bool {
	switch s {
	case StatusInProcessing, StatusAssembled, StatusCancelled,
		StatusInDelivery, StatusDelivered, StatusAdopted:
		return true
	}
	return false
}

// Terminal indica si el estado no admite más transiciones.
func (s SupplyStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusAdopted
}

// Decision acción del proveedor sobre un pedido recién creado.
type Decision string

const (
	DecisionAssemble Decision = "assemble"
	DecisionCancel   Decision = "cancel"
)

// Valid indica si la decisión es una de las conocidas.
func (d Decision) Valid() bool {
	return d == DecisionAssemble || d == DecisionCancel
}

// Status estado resultante de aplicar la decisión.
func (d Decision) Status() SupplyStatus {
	if d == DecisionAssemble {
		return StatusAssembled
	}
	return StatusCancelled
}

// Supply cabecera del pedido de suministro (raíz del agregado).
// IsWaitConfirm es true exactamente mientras Status == in_processing: el
// proveedor aún no ha decidido armar o cancelar.
type Supply struct {
	ID              int64
	Article         int64 // identificador numérico único generado
	SupplierID      int64
	CompanyID       int64
	Status          SupplyStatus
	IsWaitConfirm   bool
	DeliveryAddress string
	TotalPrice      decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SupplyProduct línea de pedido: versión de producto + cantidad.
// Se crea atómicamente con la cabecera y es inmutable después.
type SupplyProduct struct {
	ID               int64
	SupplyID         int64
	ProductVersionID int64
	Quantity         int64
}
