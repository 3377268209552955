package handler

import (
	"resto_manager/constants"
	"resto_manager/database"
	"resto_manager/helper"
	"resto_manager/model"
	"resto_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func GetMenu(c *fiber.Ctx) error {
	claim := helper.GetClaimsFromToken(c)

	var items []model.MenuItem
	if err := database.DB.
		Preload("Ingredients").
		Preload("Ingredients.InventoryItem").
		Where("organization_id = ?", claim.OrganizationId).
		Order("category asc, name asc").
		Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Error cargando el menú", err)
	}

	return utils.SuccessResponse(c, 200, items)
}

func CreateMenuItem(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateMenuItemInput)
	claim := helper.GetClaimsFromToken(c)
	if claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, 403, constants.NOT_ADMIN, nil)
	}

	item := model.MenuItem{
		Name:           input.Name,
		Category:       input.Category,
		Price:          input.Price,
		Direct:         input.Direct,
		UseInventory:   input.UseInventory,
		Stock:          input.Stock,
		Available:      true,
		OrganizationID: claim.OrganizationId,
	}
	for _, ing := range input.Ingredients {
		item.Ingredients = append(item.Ingredients, model.MenuItemIngredient{
			InventoryItemID: ing.InventoryItemID,
			Quantity:        ing.Quantity,
		})
	}

	if err := database.DB.Create(&item).Error; err != nil {
		return utils.ErrorResponse(c, 500, "No se pudo crear el producto", err)
	}

	return utils.SuccessResponse(c, 201, item)
}

func DeleteMenuItems(c *fiber.Ctx) error {
	input := c.Locals("deleteIds").(model.ArrayId)
	claim := helper.GetClaimsFromToken(c)
	if claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, 403, constants.NOT_ADMIN, nil)
	}

	if err := database.DB.Where("id IN ? AND organization_id = ?", input.IDs, claim.OrganizationId).
		Delete(&model.MenuItem{}).Error; err != nil {
		return utils.ErrorResponse(c, 500, "No se pudieron eliminar los productos", err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{"deleted": len(input.IDs)})
}

// GetMenuAvailability calcula el stock disponible de cada producto del menú
// (contador directo o mínimo derivado de ingredientes).
func GetMenuAvailability(c *fiber.Ctx) error {
	claim := helper.GetClaimsFromToken(c)

	var items []model.MenuItem
	if err := database.DB.
		Preload("Ingredients").
		Preload("Ingredients.InventoryItem").
		Where("organization_id = ? AND available = true", claim.OrganizationId).
		Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Error cargando el menú", err)
	}

	result := make([]model.MenuAvailability, 0, len(items))
	for _, item := range items {
		available, unlimited := helper.ComputeAvailability(item)
		result = append(result, model.MenuAvailability{
			MenuItemID: item.ID,
			Name:       item.Name,
			Available:  available,
			Unlimited:  unlimited,
		})
	}

	return utils.SuccessResponse(c, 200, result)
}
