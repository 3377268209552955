package helper

import (
	"resto_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GetClaimsFromToken extrae las claims del JWT puesto en Locals por el
// middleware. Si no hay token válido devuelve claims en cero.
func GetClaimsFromToken(c *fiber.Ctx) model.TokenClaim {
	claim := model.TokenClaim{}

	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return claim
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return claim
	}

	if v, ok := claims["userId"].(float64); ok {
		claim.UserId = uint(v)
	}
	if v, ok := claims["username"].(string); ok {
		claim.Username = v
	}
	if v, ok := claims["role"].(string); ok {
		claim.Role = v
	}
	if v, ok := claims["organizationId"].(float64); ok {
		claim.OrganizationId = uint(v)
	}

	return claim
}
