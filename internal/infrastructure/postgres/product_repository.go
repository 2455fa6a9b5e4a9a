package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/suministros-api/internal/domain"
	"github.com/tu-usuario/suministros-api/internal/domain/entity"
	"github.com/tu-usuario/suministros-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto apuntando a su versión inicial.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (article, product_version_id, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		product.Article, product.ProductVersionID, product.SupplierID,
	).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := `
		SELECT id, article, product_version_id, supplier_id, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Article, &p.ProductVersionID, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetFullByID obtiene un producto con su versión vigente.
func (r *ProductRepo) GetFullByID(id int64) (*entity.ProductFull, error) {
	query := `
		SELECT p.id, p.article, p.supplier_id,
			pv.id, pv.name, pv.category, pv.price, pv.description, pv.img_path, pv.created_at
		FROM products p
		JOIN product_versions pv ON pv.id = p.product_version_id
		WHERE p.id = $1`
	var pf entity.ProductFull
	var imgPath *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&pf.ID, &pf.Article, &pf.SupplierID,
		&pf.Version.ID, &pf.Version.Name, &pf.Version.Category, &pf.Version.Price,
		&pf.Version.Description, &imgPath, &pf.Version.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get full product: %w", err)
	}
	if imgPath != nil {
		pf.Version.ImgPath = *imgPath
	}
	pf.Version.ProductID = pf.ID
	return &pf, nil
}

// ExistsByArticle consulta si un artículo ya está asignado a un producto.
func (r *ProductRepo) ExistsByArticle(article int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM products WHERE article = $1)`, article,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists product article: %w", err)
	}
	return exists, nil
}

// ResolveVersionIDs resuelve producto -> versión vigente PRESERVANDO el orden
// de entrada: se consulta el lote y se vuelve a recorrer la entrada, no se
// delega el orden al ORDER BY de ninguna consulta intermedia.
func (r *ProductRepo) ResolveVersionIDs(productIDs []int64) ([]int64, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, product_version_id FROM products WHERE id = ANY($1)`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve version ids: %w", err)
	}
	defer rows.Close()

	versionByProduct := make(map[int64]int64, len(productIDs))
	for rows.Next() {
		var productID, versionID int64
		if err := rows.Scan(&productID, &versionID); err != nil {
			return nil, fmt.Errorf("scan product version id: %w", err)
		}
		versionByProduct[productID] = versionID
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	versionIDs := make([]int64, len(productIDs))
	for i, productID := range productIDs {
		versionID, ok := versionByProduct[productID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		versionIDs[i] = versionID
	}
	return versionIDs, nil
}

// ProductForVersion lookup inverso versión -> producto dueño. Funciona también
// para versiones antiguas (ya no vigentes) vía product_versions.product_id.
func (r *ProductRepo) ProductForVersion(versionID int64) (*entity.Product, error) {
	query := `
		SELECT p.id, p.article, p.product_version_id, p.supplier_id, p.created_at, p.updated_at
		FROM product_versions pv
		JOIN products p ON p.id = pv.product_id
		WHERE pv.id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, versionID).Scan(
		&p.ID, &p.Article, &p.ProductVersionID, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("product for version: %w", err)
	}
	return &p, nil
}

// RepointVersion reapunta el producto a su nueva versión vigente.
func (r *ProductRepo) RepointVersion(productID, versionID int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET product_version_id = $2, updated_at = now() WHERE id = $1`,
		productID, versionID,
	)
	if err != nil {
		return fmt.Errorf("repoint product version: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAvailableForCompany catálogo de productos de proveedores contratados por la compañía.
func (r *ProductRepo) ListAvailableForCompany(companyID int64) ([]entity.ProductFull, error) {
	query := `
		SELECT p.id, p.article, p.supplier_id,
			pv.id, pv.name, pv.category, pv.price, pv.description, pv.img_path, pv.created_at
		FROM products p
		JOIN product_versions pv ON pv.id = p.product_version_id
		JOIN contracts c ON c.supplier_id = p.supplier_id
		WHERE c.company_id = $1
		ORDER BY pv.name`
	return r.queryFull(query, companyID)
}

// ListBySupplier catálogo propio del proveedor.
func (r *ProductRepo) ListBySupplier(supplierID int64) ([]entity.ProductFull, error) {
	query := `
		SELECT p.id, p.article, p.supplier_id,
			pv.id, pv.name, pv.category, pv.price, pv.description, pv.img_path, pv.created_at
		FROM products p
		JOIN product_versions pv ON pv.id = p.product_version_id
		WHERE p.supplier_id = $1
		ORDER BY pv.name`
	return r.queryFull(query, supplierID)
}

func (r *ProductRepo) queryFull(query string, arg any) ([]entity.ProductFull, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []entity.ProductFull
	for rows.Next() {
		var pf entity.ProductFull
		var imgPath *string
		if err := rows.Scan(&pf.ID, &pf.Article, &pf.SupplierID,
			&pf.Version.ID, &pf.Version.Name, &pf.Version.Category, &pf.Version.Price,
			&pf.Version.Description, &imgPath, &pf.Version.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if imgPath != nil {
			pf.Version.ImgPath = *imgPath
		}
		pf.Version.ProductID = pf.ID
		list = append(list, pf)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
