package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/suministros-api/internal/domain/entity"
	"github.com/tu-usuario/suministros-api/internal/domain/repository"
)

var _ repository.OrganizerRepository = (*OrganizerRepo)(nil)

// OrganizerRepo persistencia de organizaciones (usable con pool o tx).
type OrganizerRepo struct {
	q Querier
}

// NewOrganizerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrganizerRepository(q Querier) *OrganizerRepo {
	return &OrganizerRepo{q: q}
}

// Create persiste una organización nueva.
func (r *OrganizerRepo) Create(organizer *entity.Organizer) error {
	query := `
		INSERT INTO organizers (role, name, address, inn, bank_details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		organizer.Role, organizer.Name, organizer.Address, organizer.INN, organizer.BankDetails,
	).Scan(&organizer.ID)
	if err != nil {
		return fmt.Errorf("insert organizer: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID.
func (r *OrganizerRepo) GetByID(id int64) (*entity.Organizer, error) {
	query := `
		SELECT id, role, name, address, inn, bank_details, created_at, updated_at
		FROM organizers WHERE id = $1`
	var o entity.Organizer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Role, &o.Name, &o.Address, &o.INN, &o.BankDetails, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organizer: %w", err)
	}
	return &o, nil
}

// GetNamesByIDs devuelve id -> nombre para un lote de organizaciones.
func (r *OrganizerRepo) GetNamesByIDs(ids []int64) (map[int64]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name FROM organizers WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("get organizer names: %w", err)
	}
	defer rows.Close()
	names := make(map[int64]string, len(ids))
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan organizer name: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}
