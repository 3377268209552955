package validate

import (
	"resto_manager/model"

	"github.com/gofiber/fiber/v2"
)

func Pay() fiber.Handler {
	return body[model.PayInput]()
}
