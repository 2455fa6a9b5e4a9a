package usecase

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/suministros-api/internal/application/dto"
	"github.com/tu-usuario/suministros-api/internal/domain"
	"github.com/tu-usuario/suministros-api/internal/domain/entity"
	"github.com/tu-usuario/suministros-api/internal/domain/repository"
	"github.com/tu-usuario/suministros-api/pkg/article"
)

// ProductUseCase ciclo de vida del catálogo del proveedor. Crear o actualizar
// un producto siempre pasa por una versión nueva: los snapshots son inmutables
// y las líneas de pedido antiguas siguen apuntando a lo que se compró.
type ProductUseCase struct {
	txRunner    CatalogTxRunner
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner CatalogTxRunner, productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, productRepo: productRepo}
}

// Create alta de producto: versión inicial + producto con artículo único +
// fila de stock del proveedor, todo en una transacción.
func (uc *ProductUseCase) Create(ctx context.Context, supplierID int64, in dto.CreateProductRequest) (*entity.ProductFull, error) {
	category := entity.Category(in.Category)
	if in.Name == "" || !category.Valid() || in.Price.LessThan(decimal.Zero) || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.ProductFull
	err := uc.txRunner.RunCatalog(ctx, func(
		productRepo repository.ProductRepository,
		versionRepo repository.ProductVersionRepository,
		supplierStockRepo repository.SupplierStockRepository,
	) error {
		version := &entity.ProductVersion{
			Name:        in.Name,
			Category:    category,
			Price:       in.Price,
			Description: in.Description,
			ImgPath:     in.ImgPath,
		}
		if err := versionRepo.Create(version); err != nil {
			return err
		}

		art, err := article.Generate(productRepo.ExistsByArticle)
		if err != nil {
			return err
		}
		product := &entity.Product{
			Article:          art,
			ProductVersionID: version.ID,
			SupplierID:       supplierID,
		}
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if err := versionRepo.SetProductID(version.ID, product.ID); err != nil {
			return err
		}

		if err := supplierStockRepo.Create(&entity.SupplierStock{
			SupplierID: supplierID,
			ProductID:  product.ID,
			Quantity:   in.Quantity,
		}); err != nil {
			return err
		}

		version.ProductID = product.ID
		created = &entity.ProductFull{
			ID:         product.ID,
			Article:    product.Article,
			SupplierID: supplierID,
			Version:    *version,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update crea una versión nueva con los atributos recibidos y reapunta el
// producto. La versión anterior queda intacta para las líneas que la citan.
func (uc *ProductUseCase) Update(ctx context.Context, supplierID, productID int64, in dto.UpdateProductRequest) (*entity.ProductFull, error) {
	category := entity.Category(in.Category)
	if in.Name == "" || !category.Valid() || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.ProductFull
	err := uc.txRunner.RunCatalog(ctx, func(
		productRepo repository.ProductRepository,
		versionRepo repository.ProductVersionRepository,
		_ repository.SupplierStockRepository,
	) error {
		product, err := productRepo.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.SupplierID != supplierID {
			return domain.ErrForbidden
		}

		version := &entity.ProductVersion{
			ProductID:   productID,
			Name:        in.Name,
			Category:    category,
			Price:       in.Price,
			Description: in.Description,
			ImgPath:     in.ImgPath,
		}
		if err := versionRepo.Create(version); err != nil {
			return err
		}
		if err := productRepo.RepointVersion(productID, version.ID); err != nil {
			return err
		}

		updated = &entity.ProductFull{
			ID:         productID,
			Article:    product.Article,
			SupplierID: supplierID,
			Version:    *version,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete borra el producto y su fila de stock como cascada explícita de
// aplicación, no como ON DELETE CASCADE del esquema.
func (uc *ProductUseCase) Delete(ctx context.Context, supplierID, productID int64) error {
	return uc.txRunner.RunCatalog(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.ProductVersionRepository,
		supplierStockRepo repository.SupplierStockRepository,
	) error {
		product, err := productRepo.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.SupplierID != supplierID {
			return domain.ErrForbidden
		}
		if err := supplierStockRepo.DeleteByProduct(productID); err != nil {
			return err
		}
		return productRepo.Delete(productID)
	})
}

// GetByID producto con su versión vigente.
func (uc *ProductUseCase) GetByID(ctx context.Context, productID int64) (*entity.ProductFull, error) {
	product, err := uc.productRepo.GetFullByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListForUser catálogo visible según el rol: el proveedor ve su propio
// catálogo, la compañía los productos de sus proveedores contratados.
func (uc *ProductUseCase) ListForUser(ctx context.Context, userData entity.UserData) ([]entity.ProductFull, error) {
	switch userData.OrganizerRole {
	case entity.RoleSupplier:
		return uc.productRepo.ListBySupplier(userData.OrganizerID)
	case entity.RoleCompany:
		return uc.productRepo.ListAvailableForCompany(userData.OrganizerID)
	}
	return nil, domain.ErrForbidden
}
