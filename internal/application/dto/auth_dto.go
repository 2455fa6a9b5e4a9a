package dto

import "time"

// RegisterRequest alta de organización + primer usuario.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`

	OrganizerRole    string `json:"organizer_role"` // company | supplier
	OrganizerName    string `json:"organizer_name"`
	OrganizerAddress string `json:"organizer_address"`
	OrganizerINN     string `json:"organizer_inn"`
	BankDetails      string `json:"bank_details"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse representación de un usuario en respuestas.
type UserResponse struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	OrganizerID   int64     `json:"organizer_id"`
	OrganizerRole string    `json:"organizer_role"`
	CreatedAt     time.Time `json:"created_at"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
