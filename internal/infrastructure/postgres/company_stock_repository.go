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

var _ repository.CompanyStockRepository = (*CompanyStockRepo)(nil)

// CompanyStockRepo ledger de stock recibido por la compañía, por versión de
// producto (usable con pool o tx).
type CompanyStockRepo struct {
	q Querier
}

// NewCompanyStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyStockRepository(q Querier) *CompanyStockRepo {
	return &CompanyStockRepo{q: q}
}

// Credit acredita amount unidades: inserta la fila si no existe, si no incrementa.
func (r *CompanyStockRepo) Credit(companyID, productVersionID, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidQuantity
	}
	query := `
		INSERT INTO company_stock (company_id, product_version_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (company_id, product_version_id)
		DO UPDATE SET quantity = company_stock.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, companyID, productVersionID, amount)
	if err != nil {
		return fmt.Errorf("credit company stock: %w", err)
	}
	return nil
}

// GetByCompanyAndVersion obtiene la fila de stock de una versión recibida.
func (r *CompanyStockRepo) GetByCompanyAndVersion(companyID, productVersionID int64) (*entity.CompanyStock, error) {
	query := `
		SELECT id, company_id, product_version_id, quantity, updated_at
		FROM company_stock WHERE company_id = $1 AND product_version_id = $2`
	var s entity.CompanyStock
	err := r.q.QueryRow(context.Background(), query, companyID, productVersionID).Scan(
		&s.ID, &s.CompanyID, &s.ProductVersionID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company stock: %w", err)
	}
	return &s, nil
}

// ListByCompany stock recibido con datos de la versión comprada.
func (r *CompanyStockRepo) ListByCompany(companyID int64) ([]entity.CompanyStockInfo, error) {
	query := `
		SELECT cs.id, cs.product_version_id, pv.name, pv.category, pv.description, cs.quantity
		FROM company_stock cs
		JOIN product_versions pv ON pv.id = cs.product_version_id
		WHERE cs.company_id = $1
		ORDER BY pv.name`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list company stock: %w", err)
	}
	defer rows.Close()
	var list []entity.CompanyStockInfo
	for rows.Next() {
		var s entity.CompanyStockInfo
		if err := rows.Scan(&s.ID, &s.ProductVersionID, &s.ProductName, &s.Category,
			&s.Description, &s.Quantity); err != nil {
			return nil, fmt.Errorf("scan company stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
