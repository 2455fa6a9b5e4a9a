package dto

import (
	"time"

	"github.com/tu-usuario/suministros-api/internal/domain/entity"
)

// CreateContractRequest alta de relación comercial con un proveedor.
type CreateContractRequest struct {
	SupplierID int64 `json:"supplier_id"`
}

// ContractResponse contrato en respuestas.
type ContractResponse struct {
	ID         int64     `json:"id"`
	CompanyID  int64     `json:"company_id"`
	SupplierID int64     `json:"supplier_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// FromContract convierte la entidad a la respuesta HTTP.
func FromContract(c entity.Contract) ContractResponse {
	return ContractResponse{
		ID:         c.ID,
		CompanyID:  c.CompanyID,
		SupplierID: c.SupplierID,
		CreatedAt:  c.CreatedAt,
	}
}
