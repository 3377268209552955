package validate

import (
	"resto_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateOrder() fiber.Handler {
	return body[model.CreateOrderInput]()
}

func UpdateOrderStatus() fiber.Handler {
	return body[model.UpdateOrderStatusInput]()
}

func UpdateItem() fiber.Handler {
	return body[model.UpdateItemInput]()
}

func BatchUpdateItems() fiber.Handler {
	return body[model.BatchUpdateItemsInput]()
}
