package auth

import (
	"context"

	"github.com/tu-usuario/suministros-api/internal/application/dto"
	"github.com/tu-usuario/suministros-api/internal/domain"
	"github.com/tu-usuario/suministros-api/internal/domain/entity"
	"github.com/tu-usuario/suministros-api/internal/domain/repository"
	"github.com/tu-usuario/suministros-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SessionStore puerto del caché de sesiones: la identidad del organizador se
// resuelve por sesión en cada petición, no viaja dentro del token.
type SessionStore interface {
	Create(ctx context.Context, data entity.UserData) (string, error)
	Get(ctx context.Context, sessionID string) (*entity.UserData, error)
	Delete(ctx context.Context, sessionID string) error
}

// AuthUseCase casos de uso de autenticación: registro, login y logout.
type AuthUseCase struct {
	userRepo      repository.UserRepository
	organizerRepo repository.OrganizerRepository
	sessions      SessionStore
	jwtCfg        JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	organizerRepo repository.OrganizerRepository,
	sessions SessionStore,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:      userRepo,
		organizerRepo: organizerRepo,
		sessions:      sessions,
		jwtCfg:        jwtCfg,
	}
}

// Register crea la organización y su primer usuario: hashea password con
// bcrypt y persiste. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	role := entity.OrganizerRole(in.OrganizerRole)
	if !role.Valid() || in.Email == "" || in.Password == "" || in.OrganizerName == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	organizer := &entity.Organizer{
		Role:        role,
		Name:        in.OrganizerName,
		Address:     in.OrganizerAddress,
		INN:         in.OrganizerINN,
		BankDetails: []byte(in.BankDetails),
	}
	if err := uc.organizerRepo.Create(organizer); err != nil {
		return nil, err
	}

	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		OrganizerID:  organizer.ID,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	return &dto.UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		OrganizerID:   organizer.ID,
		OrganizerRole: string(organizer.Role),
		CreatedAt:     user.CreatedAt,
	}, nil
}

// Login verifica email/password, abre sesión en Redis y genera el JWT que la referencia.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	organizer, err := uc.organizerRepo.GetByID(user.OrganizerID)
	if err != nil {
		return nil, err
	}
	if organizer == nil {
		return nil, domain.ErrNotFound
	}

	sessionID, err := uc.sessions.Create(ctx, entity.UserData{
		UserID:        user.ID,
		OrganizerID:   organizer.ID,
		OrganizerRole: organizer.Role,
	})
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, sessionID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:            user.ID,
			Email:         user.Email,
			Name:          user.Name,
			OrganizerID:   organizer.ID,
			OrganizerRole: string(organizer.Role),
			CreatedAt:     user.CreatedAt,
		},
	}, nil
}

// Logout invalida la sesión del token.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}
