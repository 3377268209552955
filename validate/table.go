package validate

import (
	"resto_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateTable() fiber.Handler {
	return body[model.CreateTableInput]()
}
