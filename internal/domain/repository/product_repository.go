package repository

import "github.com/tu-usuario/suministros-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos (Catalog Lookup).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	GetFullByID(id int64) (*entity.ProductFull, error)
	ExistsByArticle(article int64) (bool, error)
	// ResolveVersionIDs resuelve ids de producto -> ids de versión vigente
	// PRESERVANDO el orden de entrada; las líneas de pedido se emparejan por
	// posición con las cantidades. ErrNotFound si algún id es desconocido.
	ResolveVersionIDs(productIDs []int64) ([]int64, error)
	// ProductForVersion lookup inverso versión -> producto dueño (y su proveedor).
	// ErrNotFound si la versión no existe.
	ProductForVersion(versionID int64) (*entity.Product, error)
	// RepointVersion reapunta el producto a una nueva versión (update de producto).
	RepointVersion(productID, versionID int64) error
	// ListAvailableForCompany catálogo visible para una compañía: productos de
	// proveedores con los que tiene contrato.
	ListAvailableForCompany(companyID int64) ([]entity.ProductFull, error)
	ListBySupplier(supplierID int64) ([]entity.ProductFull, error)
	Delete(id int64) error
}

// ProductVersionRepository puerto de persistencia para versiones de producto.
// Las versiones son snapshots: solo se crean y se leen, nunca se actualizan.
type ProductVersionRepository interface {
	Create(version *entity.ProductVersion) error
	GetByID(id int64) (*entity.ProductVersion, error)
	GetByIDs(ids []int64) (map[int64]entity.ProductVersion, error)
	// SetProductID fija el producto dueño de una versión creada antes que el
	// producto (alta de catálogo). Única escritura permitida sobre una versión.
	SetProductID(versionID, productID int64) error
}
