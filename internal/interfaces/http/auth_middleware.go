package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/flowboard-api/internal/domain"
	"github.com/jhoicas/flowboard-api/pkg/jwt"
)

// Locals keys para los claims del token en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// AuthMiddleware valida el Bearer Token JWT emitido por el servicio de autenticación y
// deja UserID y Role en c.Locals. issuer vacío no verifica el emisor.
func AuthMiddleware(jwtSecret, issuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return respond(c, fiber.StatusUnauthorized, domain.KindUnauthorized, "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return respond(c, fiber.StatusUnauthorized, domain.KindUnauthorized, "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return respond(c, fiber.StatusUnauthorized, domain.KindUnauthorized, "token vacío")
		}
		claims, err := jwt.Parse(jwtSecret, issuer, tokenString)
		if err != nil {
			return respond(c, fiber.StatusUnauthorized, domain.KindUnauthorized, "token inválido o expirado")
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireRole permite el paso solo si el rol del token está en roles.
// Debe usarse después de AuthMiddleware. Sin rol en el token responde 401.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(r)] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := strings.ToLower(GetRole(c))
		if role == "" {
			return respond(c, fiber.StatusUnauthorized, domain.KindUnauthorized, "el token no incluye rol")
		}
		if _, ok := allowed[role]; !ok {
			return respond(c, fiber.StatusForbidden, domain.KindForbidden, "rol sin permiso para esta operación")
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
