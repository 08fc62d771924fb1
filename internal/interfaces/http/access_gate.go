package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/pkg/jwt"
)

// LocalIdentity clave en c.Locals de la identidad verificada.
const LocalIdentity = "identity"

// Requirement lo que exige una regla del gate.
type Requirement int

const (
	// Public deja pasar sin mirar el token.
	Public Requirement = iota
	// PageSession exige sesión; sin ella redirige a LoginPath.
	PageSession
	// APISession exige sesión; sin ella responde 401 JSON.
	APISession
)

// LoginPath destino de la redirección para páginas sin sesión.
const LoginPath = "/login"

// GateRule asocia un prefijo de ruta a un requisito. El prefijo cubre la ruta exacta y sus subrutas.
type GateRule struct {
	Prefix      string
	Requirement Requirement
}

// DefaultGateRules reglas de acceso en orden de evaluación; gana la primera que coincide.
// Las rutas que no coinciden con ninguna (estáticos, /health, /docs, /metrics) pasan sin control.
func DefaultGateRules() []GateRule {
	return []GateRule{
		{Prefix: "/api/auth/login", Requirement: Public},
		{Prefix: "/api/auth/logout", Requirement: Public},
		{Prefix: "/api", Requirement: APISession},
		{Prefix: "/dashboard", Requirement: PageSession},
		{Prefix: "/products", Requirement: PageSession},
		{Prefix: "/customers", Requirement: PageSession},
		{Prefix: "/invoices", Requirement: PageSession},
		{Prefix: "/settings", Requirement: PageSession},
	}
}

// Match devuelve la primera regla aplicable a path. La comparación ignora mayúsculas.
func Match(rules []GateRule, path string) (GateRule, bool) {
	path = strings.ToLower(path)
	for _, r := range rules {
		if path == r.Prefix || strings.HasPrefix(path, r.Prefix+"/") {
			return r, true
		}
	}
	return GateRule{}, false
}

// AccessGate valida la sesión una vez por petición según rules. El token se lee de la cookie
// cookieName o, si no está, de Authorization: Bearer. Nunca renueva el token.
func AccessGate(codec *jwt.Codec, cookieName string, rules []GateRule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rule, ok := Match(rules, c.Path())
		if !ok || rule.Requirement == Public {
			return c.Next()
		}
		id, err := codec.Verify(tokenFrom(c, cookieName))
		if err != nil {
			if rule.Requirement == PageSession {
				return c.Redirect(LoginPath, fiber.StatusFound)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión inválida o expirada"})
		}
		c.Locals(LocalIdentity, id)
		return c.Next()
	}
}

func tokenFrom(c *fiber.Ctx, cookieName string) string {
	if tok := c.Cookies(cookieName); tok != "" {
		return tok
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// GetIdentity devuelve la identidad cargada por el gate (vacía si la ruta es pública).
func GetIdentity(c *fiber.Ctx) jwt.Identity {
	id, _ := c.Locals(LocalIdentity).(jwt.Identity)
	return id
}
