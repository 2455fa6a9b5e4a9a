package dto

import "github.com/tu-usuario/suministros-api/internal/domain/entity"

// UpdateStockQuantityRequest ajuste manual de stock del proveedor.
type UpdateStockQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

// SupplierStockResponse fila de stock del proveedor con datos de catálogo.
type SupplierStockResponse struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	Article     int64  `json:"article"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	Reserved    int64  `json:"reserved"`
	Available   int64  `json:"available"`
}

// FromSupplierStockInfo convierte la vista de dominio a la respuesta HTTP.
func FromSupplierStockInfo(s entity.SupplierStockInfo) SupplierStockResponse {
	return SupplierStockResponse{
		ID:          s.ID,
		ProductID:   s.ProductID,
		Article:     s.Article,
		ProductName: s.ProductName,
		Category:    string(s.Category),
		Description: s.Description,
		Quantity:    s.Quantity,
		Reserved:    s.Reserved,
		Available:   s.Quantity - s.Reserved,
	}
}

// CompanyStockResponse fila de stock recibido con datos de la versión.
type CompanyStockResponse struct {
	ID               int64  `json:"id"`
	ProductVersionID int64  `json:"product_version_id"`
	ProductName      string `json:"product_name"`
	Category         string `json:"category"`
	Description      string `json:"description"`
	Quantity         int64  `json:"quantity"`
}

// FromCompanyStockInfo convierte la vista de dominio a la respuesta HTTP.
func FromCompanyStockInfo(s entity.CompanyStockInfo) CompanyStockResponse {
	return CompanyStockResponse{
		ID:               s.ID,
		ProductVersionID: s.ProductVersionID,
		ProductName:      s.ProductName,
		Category:         string(s.Category),
		Description:      s.Description,
		Quantity:         s.Quantity,
	}
}
