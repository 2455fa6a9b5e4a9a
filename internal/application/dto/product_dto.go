package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/suministros-api/internal/domain/entity"
)

// CreateProductRequest alta de producto en el catálogo del proveedor.
// Quantity es el stock físico inicial en bodega.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImgPath     string          `json:"img_path"`
	Quantity    int64           `json:"quantity"`
}

// UpdateProductRequest nuevos atributos vendibles: crea una versión nueva y
// reapunta el producto, nunca muta la versión existente.
type UpdateProductRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImgPath     string          `json:"img_path"`
}

// ProductResponse producto con su versión vigente.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Article     int64           `json:"article"`
	SupplierID  int64           `json:"supplier_id"`
	VersionID   int64           `json:"product_version_id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImgPath     string          `json:"img_path"`
}

// FromProductFull convierte la vista de catálogo a la respuesta HTTP.
func FromProductFull(p entity.ProductFull) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Article:     p.Article,
		SupplierID:  p.SupplierID,
		VersionID:   p.Version.ID,
		Name:        p.Version.Name,
		Category:    string(p.Version.Category),
		Price:       p.Version.Price,
		Description: p.Version.Description,
		ImgPath:     p.Version.ImgPath,
	}
}
