package entity

import "time"

// User usuario de la plataforma, pertenece a una organización.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	OrganizerID  int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserData contexto de identidad que viaja por la capa HTTP una vez autenticado.
// Se guarda en Redis bajo el id de sesión y lo resuelve el middleware.
type UserData struct {
	UserID        int64         `json:"user_id"`
	OrganizerID   int64         `json:"organizer_id"`
	OrganizerRole OrganizerRole `json:"organizer_role"`
}
