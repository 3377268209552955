package validate

import (
	"resto_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateMenuItem() fiber.Handler {
	return body[model.CreateMenuItemInput]()
}

func CreateInventoryItem() fiber.Handler {
	return body[model.CreateInventoryInput]()
}

func AdjustStock() fiber.Handler {
	return body[model.AdjustStockInput]()
}
