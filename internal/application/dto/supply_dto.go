package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/suministros-api/internal/domain/entity"
)

// SupplyProductRequest línea solicitada dentro de un pedido nuevo.
type SupplyProductRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// CreateSupplyRequest pedido nuevo de una compañía.
type CreateSupplyRequest struct {
	SupplierID      int64                  `json:"supplier_id"`
	DeliveryAddress string                 `json:"delivery_address"`
	TotalPrice      decimal.Decimal        `json:"total_price"`
	SupplyProducts  []SupplyProductRequest `json:"supply_products"`
}

// SupplyDecisionRequest decisión del proveedor: assemble | cancel.
type SupplyDecisionRequest struct {
	Decision string `json:"decision"`
}

// SupplyStatusRequest avance genérico de estado: in_delivery | delivered | adopted.
type SupplyStatusRequest struct {
	Status string `json:"status"`
}

// OrganizerInfoResponse organización dentro de una respuesta de pedido.
type OrganizerInfoResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SupplyProductResponse línea de pedido con datos de la versión comprada.
type SupplyProductResponse struct {
	ProductID        int64           `json:"product_id"`
	ProductVersionID int64           `json:"product_version_id"`
	Article          int64           `json:"article"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int64           `json:"quantity"`
}

// SupplyResponse pedido completo para listados.
type SupplyResponse struct {
	ID              int64                   `json:"id"`
	Article         int64                   `json:"article"`
	Supplier        OrganizerInfoResponse   `json:"supplier"`
	Company         OrganizerInfoResponse   `json:"company"`
	Status          string                  `json:"status"`
	IsWaitConfirm   bool                    `json:"is_wait_confirm"`
	DeliveryAddress string                  `json:"delivery_address"`
	TotalPrice      decimal.Decimal         `json:"total_price"`
	SupplyProducts  []SupplyProductResponse `json:"supply_products"`
}

// FromSupplySummary convierte la vista de dominio a la respuesta HTTP.
func FromSupplySummary(s entity.SupplySummary) SupplyResponse {
	products := make([]SupplyProductResponse, 0, len(s.Products))
	for _, p := range s.Products {
		products = append(products, SupplyProductResponse{
			ProductID:        p.ProductID,
			ProductVersionID: p.ProductVersionID,
			Article:          p.Article,
			Name:             p.Name,
			Category:         string(p.Category),
			Price:            p.Price,
			Quantity:         p.Quantity,
		})
	}
	return SupplyResponse{
		ID:              s.ID,
		Article:         s.Article,
		Supplier:        OrganizerInfoResponse{ID: s.Supplier.ID, Name: s.Supplier.Name},
		Company:         OrganizerInfoResponse{ID: s.Company.ID, Name: s.Company.Name},
		Status:          string(s.Status),
		IsWaitConfirm:   s.IsWaitConfirm,
		DeliveryAddress: s.DeliveryAddress,
		TotalPrice:      s.TotalPrice,
		SupplyProducts:  products,
	}
}
