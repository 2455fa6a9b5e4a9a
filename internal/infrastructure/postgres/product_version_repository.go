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

var _ repository.ProductVersionRepository = (*ProductVersionRepo)(nil)

// ProductVersionRepo persistencia de snapshots de catálogo (usable con pool o tx).
// Las versiones solo se insertan y se leen; la única escritura posterior es
// SetProductID al terminar el alta del producto dueño.
type ProductVersionRepo struct {
	q Querier
}

// NewProductVersionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductVersionRepository(q Querier) *ProductVersionRepo {
	return &ProductVersionRepo{q: q}
}

// Create persiste una versión nueva. ProductID 0 se guarda como NULL (alta de
// producto: la versión nace antes que su dueño).
func (r *ProductVersionRepo) Create(version *entity.ProductVersion) error {
	productID := (*int64)(nil)
	if version.ProductID != 0 {
		productID = &version.ProductID
	}
	imgPath := (*string)(nil)
	if version.ImgPath != "" {
		imgPath = &version.ImgPath
	}
	query := `
		INSERT INTO product_versions (product_id, name, category, price, description, img_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		productID, version.Name, version.Category, version.Price, version.Description, imgPath,
	).Scan(&version.ID)
	if err != nil {
		return fmt.Errorf("insert product version: %w", err)
	}
	return nil
}

// GetByID obtiene una versión por ID.
func (r *ProductVersionRepo) GetByID(id int64) (*entity.ProductVersion, error) {
	query := `
		SELECT id, COALESCE(product_id, 0), name, category, price, description, COALESCE(img_path, ''), created_at
		FROM product_versions WHERE id = $1`
	var v entity.ProductVersion
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.ProductID, &v.Name, &v.Category, &v.Price, &v.Description, &v.ImgPath, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product version: %w", err)
	}
	return &v, nil
}

// GetByIDs obtiene un lote de versiones indexado por id.
func (r *ProductVersionRepo) GetByIDs(ids []int64) (map[int64]entity.ProductVersion, error) {
	query := `
		SELECT id, COALESCE(product_id, 0), name, category, price, description, COALESCE(img_path, ''), created_at
		FROM product_versions WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("get product versions: %w", err)
	}
	defer rows.Close()
	versions := make(map[int64]entity.ProductVersion, len(ids))
	for rows.Next() {
		var v entity.ProductVersion
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Category, &v.Price,
			&v.Description, &v.ImgPath, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product version: %w", err)
		}
		versions[v.ID] = v
	}
	return versions, rows.Err()
}

// SetProductID fija el producto dueño de la versión.
func (r *ProductVersionRepo) SetProductID(versionID, productID int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE product_versions SET product_id = $2 WHERE id = $1`,
		versionID, productID,
	)
	if err != nil {
		return fmt.Errorf("set product id on version: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
