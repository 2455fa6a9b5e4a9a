package usecase

import (
	"context"

	"github.com/tu-usuario/suministros-api/internal/domain"
	"github.com/tu-usuario/suministros-api/internal/domain/entity"
	"github.com/tu-usuario/suministros-api/internal/domain/repository"
)

// ContractUseCase registro de contratos compañía↔proveedor. La existencia del
// contrato es la compuerta para crear pedidos; aquí solo se administra el
// vínculo, nunca el stock.
type ContractUseCase struct {
	contractRepo  repository.ContractRepository
	organizerRepo repository.OrganizerRepository
}

// NewContractUseCase construye el caso de uso.
func NewContractUseCase(contractRepo repository.ContractRepository, organizerRepo repository.OrganizerRepository) *ContractUseCase {
	return &ContractUseCase{contractRepo: contractRepo, organizerRepo: organizerRepo}
}

// Create la compañía firma un contrato con un proveedor. El duplicado se
// verifica a nivel de aplicación: el par (compañía, proveedor) es único.
func (uc *ContractUseCase) Create(ctx context.Context, companyID, supplierID int64) (*entity.Contract, error) {
	supplier, err := uc.organizerRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if supplier.Role != entity.RoleSupplier {
		return nil, domain.ErrInvalidInput
	}

	exists, err := uc.contractRepo.Exists(companyID, supplierID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}

	contract := &entity.Contract{CompanyID: companyID, SupplierID: supplierID}
	if err := uc.contractRepo.Create(contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// List contratos del organizador según su rol.
func (uc *ContractUseCase) List(ctx context.Context, userData entity.UserData) ([]entity.Contract, error) {
	return uc.contractRepo.ListByOrganizer(userData.OrganizerID, userData.OrganizerRole)
}

// Delete solo un participante del contrato puede terminarlo. Los pedidos ya
// creados bajo el contrato no se tocan.
func (uc *ContractUseCase) Delete(ctx context.Context, userData entity.UserData, contractID int64) error {
	contract, err := uc.contractRepo.GetByID(contractID)
	if err != nil {
		return err
	}
	if contract == nil {
		return domain.ErrNotFound
	}
	if contract.CompanyID != userData.OrganizerID && contract.SupplierID != userData.OrganizerID {
		return domain.ErrForbidden
	}
	return uc.contractRepo.Delete(contractID)
}
