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

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

// SupplyRepo persistencia de cabeceras de pedido sobre PostgreSQL (usable con pool o tx).
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

// Create persiste la cabecera del pedido.
func (r *SupplyRepo) Create(supply *entity.Supply) error {
	query := `
		INSERT INTO supplies (article, supplier_id, company_id, status, is_wait_confirm, delivery_address, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		supply.Article, supply.SupplierID, supply.CompanyID, supply.Status,
		supply.IsWaitConfirm, supply.DeliveryAddress, supply.TotalPrice,
	).Scan(&supply.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supply: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un pedido.
func (r *SupplyRepo) GetByID(id int64) (*entity.Supply, error) {
	query := `
		SELECT id, article, supplier_id, company_id, status, is_wait_confirm, delivery_address, total_price, created_at, updated_at
		FROM supplies WHERE id = $1`
	var s entity.Supply
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Article, &s.SupplierID, &s.CompanyID, &s.Status, &s.IsWaitConfirm,
		&s.DeliveryAddress, &s.TotalPrice, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply: %w", err)
	}
	return &s, nil
}

// ExistsByArticle consulta si un artículo ya está asignado a un pedido.
func (r *SupplyRepo) ExistsByArticle(article int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM supplies WHERE article = $1)`, article,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists supply article: %w", err)
	}
	return exists, nil
}

// UpdateStatus escribe status + is_wait_confirm verificando la propiedad del
// proveedor en la misma sentencia. Devuelve false si no afectó filas.
func (r *SupplyRepo) UpdateStatus(supplyID, supplierID int64, status entity.SupplyStatus, isWaitConfirm bool) (bool, error) {
	query := `
		UPDATE supplies
		SET status = $3, is_wait_confirm = $4, updated_at = now()
		WHERE id = $1 AND supplier_id = $2`
	cmd, err := r.q.Exec(context.Background(), query, supplyID, supplierID, status, isWaitConfirm)
	if err != nil {
		return false, fmt.Errorf("update supply status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List pedidos de un organizador con nombres de organizaciones y detalle de líneas.
func (r *SupplyRepo) List(filter repository.SupplyListFilter) ([]entity.SupplySummary, error) {
	query := `
		SELECT s.id, s.article, s.supplier_id, sup.name, s.company_id, com.name,
			s.status, s.is_wait_confirm, s.delivery_address, s.total_price
		FROM supplies s
		JOIN organizers sup ON sup.id = s.supplier_id
		JOIN organizers com ON com.id = s.company_id
		WHERE 1=1`
	args := []any{}
	if filter.CompanyID != 0 {
		args = append(args, filter.CompanyID)
		query += fmt.Sprintf(" AND s.company_id = $%d", len(args))
	}
	if filter.SupplierID != 0 {
		args = append(args, filter.SupplierID)
		query += fmt.Sprintf(" AND s.supplier_id = $%d", len(args))
	}
	if filter.IsWaitConfirm != nil {
		args = append(args, *filter.IsWaitConfirm)
		query += fmt.Sprintf(" AND s.is_wait_confirm = $%d", len(args))
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY s.created_at DESC LIMIT $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	defer rows.Close()

	var summaries []entity.SupplySummary
	var ids []int64
	for rows.Next() {
		var s entity.SupplySummary
		if err := rows.Scan(&s.ID, &s.Article, &s.Supplier.ID, &s.Supplier.Name,
			&s.Company.ID, &s.Company.Name, &s.Status, &s.IsWaitConfirm,
			&s.DeliveryAddress, &s.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		summaries = append(summaries, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return summaries, nil
	}

	if err := r.attachProducts(summaries, ids); err != nil {
		return nil, err
	}
	return summaries, nil
}

// attachProducts carga las líneas de un lote de pedidos con los datos de la
// versión comprada. LEFT JOIN a products: la línea sobrevive aunque el
// producto haya sido eliminado del catálogo.
func (r *SupplyRepo) attachProducts(summaries []entity.SupplySummary, ids []int64) error {
	query := `
		SELECT sp.supply_id, COALESCE(p.id, 0), sp.product_version_id, COALESCE(p.article, 0),
			pv.name, pv.category, pv.price, sp.quantity
		FROM supply_products sp
		JOIN product_versions pv ON pv.id = sp.product_version_id
		LEFT JOIN products p ON p.id = pv.product_id
		WHERE sp.supply_id = ANY($1)
		ORDER BY sp.id`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("list supply products: %w", err)
	}
	defer rows.Close()

	bySupply := make(map[int64][]entity.SupplyProductDetail, len(ids))
	for rows.Next() {
		var supplyID int64
		var d entity.SupplyProductDetail
		if err := rows.Scan(&supplyID, &d.ProductID, &d.ProductVersionID, &d.Article,
			&d.Name, &d.Category, &d.Price, &d.Quantity); err != nil {
			return fmt.Errorf("scan supply product: %w", err)
		}
		bySupply[supplyID] = append(bySupply[supplyID], d)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for i := range summaries {
		summaries[i].Products = bySupply[summaries[i].ID]
	}
	return nil
}

// Delete borrado operativo de un pedido y sus líneas.
func (r *SupplyRepo) Delete(id int64) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM supply_products WHERE supply_id = $1`, id); err != nil {
		return fmt.Errorf("delete supply products: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM supplies WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete supply: %w", err)
	}
	return nil
}
