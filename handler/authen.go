package handler

import (
	"errors"
	"os"
	"time"

	"resto_manager/database"
	"resto_manager/helper"
	"resto_manager/model"
	"resto_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Login autentica al usuario y emite el JWT con organización y rol. El resto
// del sistema confía en ese contexto y no re-valida credenciales.
func Login(c *fiber.Ctx) error {
	input := c.Locals("input").(model.LoginInput)

	var user model.User
	if err := database.DB.Where("username = ? AND active = true", input.Username).First(&user).Error; err != nil {
		return utils.ErrorResponse(c, 401, "Usuario o contraseña incorrectos", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.ErrorResponse(c, 401, "Usuario o contraseña incorrectos", nil)
	}

	claims := jwt.MapClaims{
		"userId":         user.ID,
		"username":       user.Username,
		"role":           user.Role,
		"organizationId": user.OrganizationID,
		"exp":            time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return utils.ErrorResponse(c, 500, "No se pudo generar el token", err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"token": model.TokenData{AccessToken: signed},
		"user":  user,
	})
}

func Me(c *fiber.Ctx) error {
	claim := helper.GetClaimsFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, 401, "Sesión inválida", errors.New("no claims"))
	}

	var user model.User
	if err := database.DB.First(&user, claim.UserId).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Usuario no encontrado", err)
	}

	return utils.SuccessResponse(c, 200, user)
}
