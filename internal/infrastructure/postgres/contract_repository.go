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

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo registro de contratos compañía↔proveedor sobre PostgreSQL.
type ContractRepo struct {
	q Querier
}

// NewContractRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

// Create persiste un contrato nuevo.
func (r *ContractRepo) Create(contract *entity.Contract) error {
	query := `
		INSERT INTO contracts (company_id, supplier_id, created_at)
		VALUES ($1, $2, now())
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		contract.CompanyID, contract.SupplierID,
	).Scan(&contract.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contract: %w", err)
	}
	return nil
}

// Exists compuerta booleana de la creación de pedidos.
func (r *ContractRepo) Exists(companyID, supplierID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM contracts WHERE company_id = $1 AND supplier_id = $2)`,
		companyID, supplierID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists contract: %w", err)
	}
	return exists, nil
}

// GetByID obtiene un contrato por ID.
func (r *ContractRepo) GetByID(id int64) (*entity.Contract, error) {
	query := `SELECT id, company_id, supplier_id, created_at FROM contracts WHERE id = $1`
	var c entity.Contract
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.CompanyID, &c.SupplierID, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return &c, nil
}

// ListByOrganizer contratos donde el organizador participa según su rol.
func (r *ContractRepo) ListByOrganizer(organizerID int64, role entity.OrganizerRole) ([]entity.Contract, error) {
	column := "company_id"
	if role == entity.RoleSupplier {
		column = "supplier_id"
	}
	query := fmt.Sprintf(
		`SELECT id, company_id, supplier_id, created_at FROM contracts WHERE %s = $1 ORDER BY created_at DESC`,
		column,
	)
	rows, err := r.q.Query(context.Background(), query, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()
	var list []entity.Contract
	for rows.Next() {
		var c entity.Contract
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.SupplierID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete elimina un contrato por ID.
func (r *ContractRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contract: %w", err)
	}
	return nil
}
