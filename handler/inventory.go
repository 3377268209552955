package handler

import (
	"errors"

	"resto_manager/constants"
	"resto_manager/database"
	"resto_manager/helper"
	"resto_manager/model"
	"resto_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetInventory(c *fiber.Ctx) error {
	claim := helper.GetClaimsFromToken(c)

	var items []model.InventoryItem
	if err := database.DB.
		Where("organization_id = ?", claim.OrganizationId).
		Order("name asc").
		Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Error cargando inventario", err)
	}

	return utils.SuccessResponse(c, 200, items)
}

func CreateInventoryItem(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateInventoryInput)
	claim := helper.GetClaimsFromToken(c)
	if claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, 403, constants.NOT_ADMIN, nil)
	}

	item := model.InventoryItem{
		Name:           input.Name,
		Unit:           input.Unit,
		CurrentStock:   input.CurrentStock,
		OrganizationID: claim.OrganizationId,
	}
	if err := database.DB.Create(&item).Error; err != nil {
		return utils.ErrorResponse(c, 500, "No se pudo crear el insumo", err)
	}

	return utils.SuccessResponse(c, 201, item)
}

// AdjustStock suma o resta existencias (recepción de compras, mermas). La
// resta es condicional: nunca deja el stock negativo.
func AdjustStock(c *fiber.Ctx) error {
	inventoryId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.AdjustStockInput)
	claim := helper.GetClaimsFromToken(c)

	db := database.DB

	var item model.InventoryItem
	if err := db.Where("id = ? AND organization_id = ?", inventoryId, claim.OrganizationId).First(&item).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.INVENTORY_NOT_FOUND, err)
	}

	query := db.Model(&model.InventoryItem{}).Where("id = ?", item.ID)
	if input.Delta < 0 {
		query = query.Where("current_stock >= ?", -input.Delta)
	}
	res := query.Update("current_stock", gorm.Expr("current_stock + ?", input.Delta))
	if res.Error != nil {
		return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, 409, constants.STOCK_SHORTFALL, errors.New("el ajuste dejaría el stock negativo"))
	}

	db.First(&item, item.ID)
	return utils.SuccessResponse(c, 200, item)
}

func DeleteInventoryItems(c *fiber.Ctx) error {
	input := c.Locals("deleteIds").(model.ArrayId)
	claim := helper.GetClaimsFromToken(c)
	if claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, 403, constants.NOT_ADMIN, nil)
	}

	if err := database.DB.Where("id IN ? AND organization_id = ?", input.IDs, claim.OrganizationId).
		Delete(&model.InventoryItem{}).Error; err != nil {
		return utils.ErrorResponse(c, 500, "No se pudieron eliminar los insumos", err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{"deleted": len(input.IDs)})
}
