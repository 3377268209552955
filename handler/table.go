package handler

import (
	"errors"

	"resto_manager/constants"
	"resto_manager/database"
	"resto_manager/helper"
	"resto_manager/model"
	"resto_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func GetTables(c *fiber.Ctx) error {
	claim := helper.GetClaimsFromToken(c)

	var tables []model.Table
	if err := database.DB.
		Where("organization_id = ?", claim.OrganizationId).
		Order("number asc").
		Find(&tables).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Error cargando mesas", err)
	}

	return utils.SuccessResponse(c, 200, tables)
}

func CreateTable(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateTableInput)
	claim := helper.GetClaimsFromToken(c)
	if claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, 403, constants.NOT_ADMIN, nil)
	}

	db := database.DB

	var existing model.Table
	if err := db.Where("organization_id = ? AND number = ?", claim.OrganizationId, input.Number).First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, 409, constants.TABLE_NUMBER_TAKEN, nil)
	}

	table := model.Table{
		Number:         input.Number,
		OrganizationID: claim.OrganizationId,
		Capacity:       input.Capacity,
		Blockable:      true,
		Status:         model.TableDisponible,
	}
	if table.Capacity == 0 {
		table.Capacity = 4
	}
	if input.Blockable != nil {
		table.Blockable = *input.Blockable
	}

	// El índice único (organization_id, number) respalda la revisión de
	// arriba contra creaciones concurrentes.
	if err := db.Create(&table).Error; err != nil {
		return utils.ErrorResponse(c, 409, constants.TABLE_NUMBER_TAKEN, err)
	}

	return utils.SuccessResponse(c, 201, table)
}

func DeleteTables(c *fiber.Ctx) error {
	input := c.Locals("deleteIds").(model.ArrayId)
	claim := helper.GetClaimsFromToken(c)
	if claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, 403, constants.NOT_ADMIN, nil)
	}

	db := database.DB

	// No se borran mesas con órdenes activas.
	var tables []model.Table
	if err := db.Where("id IN ? AND organization_id = ?", input.IDs, claim.OrganizationId).Find(&tables).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
	}
	for _, table := range tables {
		var count int64
		db.Model(&model.Order{}).
			Where("organization_id = ? AND table_number = ? AND status NOT IN ?",
				claim.OrganizationId, table.Number,
				[]string{model.OrderPagado, model.OrderCancelado}).
			Count(&count)
		if count > 0 {
			return utils.ErrorResponse(c, 409, "La mesa tiene una orden activa", errors.New("mesa ocupada"))
		}
	}

	if err := db.Where("id IN ? AND organization_id = ?", input.IDs, claim.OrganizationId).
		Delete(&model.Table{}).Error; err != nil {
		return utils.ErrorResponse(c, 500, "No se pudieron eliminar las mesas", err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{"deleted": len(tables)})
}

// ForceReleaseTable: único camino manual para tocar el estado de una mesa,
// reservado a administración (mesa trabada por una orden perdida).
func ForceReleaseTable(c *fiber.Ctx) error {
	tableId := c.Locals("inputId").(int)
	claim := helper.GetClaimsFromToken(c)
	if claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, 403, constants.NOT_ADMIN, nil)
	}

	db := database.DB

	var table model.Table
	if err := db.Where("id = ? AND organization_id = ?", tableId, claim.OrganizationId).First(&table).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.TABLE_NOT_FOUND, err)
	}

	if err := db.Model(&table).Update("status", model.TableDisponible).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
	}

	Publish(claim.OrganizationId, "mesa_liberada", fiber.Map{"tableNumber": table.Number})

	return utils.SuccessResponse(c, 200, table)
}
