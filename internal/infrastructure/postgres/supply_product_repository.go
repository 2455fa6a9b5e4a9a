package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/suministros-api/internal/domain/entity"
	"github.com/tu-usuario/suministros-api/internal/domain/repository"
)

var _ repository.SupplyProductRepository = (*SupplyProductRepo)(nil)

// SupplyProductRepo persistencia de líneas de pedido (usable con pool o tx).
type SupplyProductRepo struct {
	q Querier
}

// NewSupplyProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplyProductRepository(q Querier) *SupplyProductRepo {
	return &SupplyProductRepo{q: q}
}

// CreateAll persiste el lote de líneas de un pedido nuevo.
func (r *SupplyProductRepo) CreateAll(items []entity.SupplyProduct) error {
	query := `
		INSERT INTO supply_products (supply_id, product_version_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id`
	for i := range items {
		err := r.q.QueryRow(context.Background(), query,
			items[i].SupplyID, items[i].ProductVersionID, items[i].Quantity,
		).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("insert supply product: %w", err)
		}
	}
	return nil
}

// ListBySupply líneas de un pedido en orden de inserción.
func (r *SupplyProductRepo) ListBySupply(supplyID int64) ([]entity.SupplyProduct, error) {
	query := `
		SELECT id, supply_id, product_version_id, quantity
		FROM supply_products WHERE supply_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, supplyID)
	if err != nil {
		return nil, fmt.Errorf("list supply products: %w", err)
	}
	defer rows.Close()
	var list []entity.SupplyProduct
	for rows.Next() {
		var p entity.SupplyProduct
		if err := rows.Scan(&p.ID, &p.SupplyID, &p.ProductVersionID, &p.Quantity); err != nil {
			return nil, fmt.Errorf("scan supply product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
