package repository

import "github.com/tu-usuario/suministros-api/internal/domain/entity"

// OrganizerRepository puerto de persistencia para organizaciones.
type OrganizerRepository interface {
	Create(organizer *entity.Organizer) error
	GetByID(id int64) (*entity.Organizer, error)
	// GetNamesByIDs devuelve id -> nombre para armar respuestas de pedidos.
	GetNamesByIDs(ids []int64) (map[int64]string, error)
}
