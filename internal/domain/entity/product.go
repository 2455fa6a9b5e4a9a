package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category categoría de producto (enum cerrado).
type Category string

const (
	CategoryHairColoring       Category = "hair_coloring"
	CategoryHairCare           Category = "hair_care"
	CategoryHairStyling        Category = "hair_styling"
	CategoryConsumables        Category = "consumables"
	CategoryPerming            Category = "perming"
	CategoryEyebrowsEyelashes  Category = "eyebrows_and_eyelashes"
	CategoryManicurePedicure   Category = "manicure_and_pedicure"
	CategoryToolsAndEquipment  Category = "tools_and_equipment"
)

// Valid indica si la categoría pertenece al enum.
func (c Category) Valid() bool {
	switch c {
	case CategoryHairColoring, CategoryHairCare, CategoryHairStyling,
		CategoryConsumables, CategoryPerming, CategoryEyebrowsEyelashes,
		CategoryManicurePedicure, CategoryToolsAndEquipment:
		return true
	}
	return false
}

// Product identidad estable de un producto del catálogo de un proveedor.
// Inmutable salvo por el repunte de ProductVersionID: actualizar los atributos
// vendibles crea una nueva versión y reapunta el producto a ella.
type Product struct {
	ID               int64
	Article          int64 // identificador numérico único generado
	ProductVersionID int64
	SupplierID       int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ProductFull vista de catálogo: producto con su versión vigente.
type ProductFull struct {
	ID         int64
	Article    int64
	SupplierID int64
	Version    ProductVersion
}

// ProductVersion snapshot inmutable de los atributos vendibles de un producto.
// Nunca se muta después de creada; las líneas de pedido y el stock de compañía
// la referencian por id para congelar "exactamente lo que se compró".
type ProductVersion struct {
	ID          int64
	ProductID   int64 // 0 hasta que el producto dueño existe (se fija al crearlo)
	Name        string
	Category    Category
	Price       decimal.Decimal
	Description string
	ImgPath     string
	CreatedAt   time.Time
}
