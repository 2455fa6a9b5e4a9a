package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/suministros-api/internal/application/auth"
	"github.com/tu-usuario/suministros-api/internal/application/dto"
	"github.com/tu-usuario/suministros-api/internal/domain/entity"
	"github.com/tu-usuario/suministros-api/pkg/jwt"
)

// Locals keys para los datos de sesión en Fiber.
const (
	LocalUserData  = "user_data"
	LocalSessionID = "session_id"
)

// AuthMiddleware valida el Bearer Token JWT y resuelve la sesión en Redis:
// el token solo referencia la sesión, la identidad del organizador vive en
// el caché y se carga en c.Locals en cada petición.
func AuthMiddleware(jwtSecret string, sessions auth.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		_, sessionID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		userData, err := sessions.Get(c.Context(), sessionID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		if userData == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "sesión expirada o cerrada"})
		}
		c.Locals(LocalUserData, *userData)
		c.Locals(LocalSessionID, sessionID)
		return c.Next()
	}
}

// RequireRole restringe la ruta a un rol de organizador.
func RequireRole(role entity.OrganizerRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userData, ok := GetUserData(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
		}
		if userData.OrganizerRole != role {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol no autorizado para esta operación"})
		}
		return c.Next()
	}
}

// GetUserData devuelve los datos de sesión del contexto (después del middleware de auth).
func GetUserData(c *fiber.Ctx) (entity.UserData, bool) {
	v := c.Locals(LocalUserData)
	if v == nil {
		return entity.UserData{}, false
	}
	d, ok := v.(entity.UserData)
	return d, ok
}

// GetSessionID devuelve el id de sesión del contexto (después del middleware de auth).
func GetSessionID(c *fiber.Ctx) string {
	v := c.Locals(LocalSessionID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
