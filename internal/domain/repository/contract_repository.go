package repository

import "github.com/tu-usuario/suministros-api/internal/domain/entity"

// ContractRepository puerto del registro de contratos (Contract Registry).
type ContractRepository interface {
	Create(contract *entity.Contract) error
	// Exists compuerta booleana para la creación de pedidos. Sin efectos.
	Exists(companyID, supplierID int64) (bool, error)
	GetByID(id int64) (*entity.Contract, error)
	ListByOrganizer(organizerID int64, role entity.OrganizerRole) ([]entity.Contract, error)
	Delete(id int64) error
}
