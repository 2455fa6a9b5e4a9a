package entity

import "time"

// OrganizerRole rol de una organización dentro de la plataforma.
type OrganizerRole string

const (
	RoleCompany  OrganizerRole = "company"  // compradora
	RoleSupplier OrganizerRole = "supplier" // vendedora
)

// Valid indica si el rol es uno de los conocidos.
func (r OrganizerRole) Valid() bool {
	return r == RoleCompany || r == RoleSupplier
}

// Organizer una organización participante: compañía (compra) o proveedor (vende).
type Organizer struct {
	ID          int64
	Role        OrganizerRole
	Name        string
	Address     string
	INN         string
	BankDetails []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
