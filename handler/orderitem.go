package handler

import (
	"fmt"
	"time"

	"resto_manager/constants"
	"resto_manager/database"
	"resto_manager/helper"
	"resto_manager/model"
	"resto_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// loadItemForUpdate trae el ítem con su orden (verificando tenant) y bloquea
// la fila de la orden para serializar contra pagos y otros cambios. El ítem
// se relee ya con el candado tomado: mientras se esperaba, un pago concurrente
// pudo enlazarlo a una transacción o dividir la línea, y decidir sobre la foto
// vieja dejaría mutar un ítem recién pagado.
func loadItemForUpdate(tx *gorm.DB, itemID int, orgID uint) (model.OrderItem, model.Order, error) {
	var item model.OrderItem
	if err := tx.First(&item, itemID).Error; err != nil {
		return item, model.Order{}, err
	}

	var order model.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND organization_id = ?", item.OrderID, orgID).
		First(&order).Error; err != nil {
		return item, order, err
	}

	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("MenuItem").First(&item, itemID).Error; err != nil {
		return item, order, err
	}
	return item, order, nil
}

// UpdateItem cambia estado y/o notas de una línea. Los timestamps de
// preparación se fijan una sola vez. Con quantity menor a la cantidad de la
// línea, solo esa parte avanza de estado: la línea se divide en dos.
func UpdateItem(c *fiber.Ctx) error {
	itemId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.UpdateItemInput)
	claim := helper.GetClaimsFromToken(c)
	orgID := claim.OrganizationId

	db := database.DB
	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	item, order, err := loadItemForUpdate(tx, itemId, orgID)
	if err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 404, constants.ITEM_NOT_FOUND, err)
	}

	if input.Notes != nil {
		item.Notes = *input.Notes
	}

	var affected []model.OrderItem
	if input.Status != "" && input.Status != item.Status {
		if helper.ItemFrozen(item) {
			tx.Rollback()
			return utils.ErrorResponse(c, 409, constants.ITEM_ALREADY_PAID, nil)
		}
		if !helper.CanTransitionItem(item.Status, input.Status) {
			tx.Rollback()
			return utils.ErrorResponse(c, 409, constants.INVALID_STATUS,
				fmt.Errorf("transición %s → %s no permitida", item.Status, input.Status))
		}

		now := time.Now()
		if input.Quantity != nil && *input.Quantity < item.Quantity {
			// Avance parcial: la parte completada se separa en su
			// propia línea con el estado nuevo.
			remainder, split := helper.SplitItem(item, *input.Quantity)
			helper.ApplyItemStatus(&split, input.Status, now)

			if err := tx.Model(&model.OrderItem{}).Where("id = ?", item.ID).
				Updates(map[string]any{"quantity": remainder.Quantity, "notes": remainder.Notes}).Error; err != nil {
				tx.Rollback()
				return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
			}
			if err := tx.Create(&split).Error; err != nil {
				tx.Rollback()
				return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
			}
			affected = []model.OrderItem{remainder, split}
		} else {
			helper.ApplyItemStatus(&item, input.Status, now)
			if err := tx.Model(&model.OrderItem{}).Where("id = ?", item.ID).Updates(map[string]any{
				"status":       item.Status,
				"notes":        item.Notes,
				"started_at":   item.StartedAt,
				"completed_at": item.CompletedAt,
				"served_at":    item.ServedAt,
			}).Error; err != nil {
				tx.Rollback()
				return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
			}
			affected = []model.OrderItem{item}
		}
	} else {
		// Solo notas (o estado repetido: no-op idempotente).
		if err := tx.Model(&model.OrderItem{}).Where("id = ?", item.ID).
			Update("notes", item.Notes).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
		}
		affected = []model.OrderItem{item}
	}

	tx.Commit()

	Publish(orgID, "item_actualizado", fiber.Map{"orderId": order.ID, "items": affected})

	return utils.SuccessResponse(c, 200, affected)
}

// BatchUpdateItems aplica un mismo estado a varias líneas en una sola
// transacción, todo o nada (tableros de cocina: "todo lo de la mesa 4 salió").
func BatchUpdateItems(c *fiber.Ctx) error {
	input := c.Locals("input").(model.BatchUpdateItemsInput)
	claim := helper.GetClaimsFromToken(c)
	orgID := claim.OrganizationId

	db := database.DB
	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	now := time.Now()
	touchedOrders := map[uint]bool{}
	var updated []model.OrderItem

	// Orden fijo de adquisición de candados entre lotes concurrentes.
	for _, id := range helper.DedupSortIDs(input.ItemIDs) {
		item, order, err := loadItemForUpdate(tx, int(id), orgID)
		if err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, 404, constants.ITEM_NOT_FOUND, fmt.Errorf("ítem %d: %w", id, err))
		}
		if helper.ItemFrozen(item) {
			tx.Rollback()
			return utils.ErrorResponse(c, 409, constants.ITEM_ALREADY_PAID, fmt.Errorf("ítem %d", id))
		}
		if item.Status == input.Status {
			updated = append(updated, item)
			touchedOrders[order.ID] = true
			continue
		}
		if !helper.CanTransitionItem(item.Status, input.Status) {
			tx.Rollback()
			return utils.ErrorResponse(c, 409, constants.INVALID_STATUS,
				fmt.Errorf("ítem %d: transición %s → %s no permitida", id, item.Status, input.Status))
		}

		helper.ApplyItemStatus(&item, input.Status, now)
		if err := tx.Model(&model.OrderItem{}).Where("id = ?", item.ID).Updates(map[string]any{
			"status":       item.Status,
			"started_at":   item.StartedAt,
			"completed_at": item.CompletedAt,
			"served_at":    item.ServedAt,
		}).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
		}
		updated = append(updated, item)
		touchedOrders[order.ID] = true
	}

	tx.Commit()

	for orderID := range touchedOrders {
		Publish(orgID, "item_actualizado", fiber.Map{"orderId": orderID, "status": input.Status})
	}

	return utils.SuccessResponse(c, 200, updated)
}

// removeItem borra la línea y descuenta su precio extendido de los totales de
// la orden en la misma transacción: el invariante total = Σ líneas se
// conserva en todo commit.
func removeItem(tx *gorm.DB, item model.OrderItem, order model.Order) error {
	if err := tx.Delete(&model.OrderItem{}, item.ID).Error; err != nil {
		return err
	}
	extended := item.UnitPrice * int64(item.Quantity)
	return tx.Model(&order).Updates(map[string]any{
		"subtotal": gorm.Expr("subtotal - ?", extended),
		"total":    gorm.Expr("total - ?", extended),
	}).Error
}

// DeleteItem: retiro de línea por personal (sin regla de elegibilidad).
func DeleteItem(c *fiber.Ctx) error {
	itemId := c.Locals("inputId").(int)
	claim := helper.GetClaimsFromToken(c)
	orgID := claim.OrganizationId

	db := database.DB
	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	item, order, err := loadItemForUpdate(tx, itemId, orgID)
	if err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 404, constants.ITEM_NOT_FOUND, err)
	}
	if helper.ItemFrozen(item) {
		tx.Rollback()
		return utils.ErrorResponse(c, 409, constants.ITEM_ALREADY_PAID, nil)
	}

	if err := removeItem(tx, item, order); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
	}

	tx.Commit()

	Publish(orgID, "item_eliminado", fiber.Map{"orderId": order.ID, "itemId": item.ID})

	return utils.SuccessResponse(c, 200, fiber.Map{"message": "Ítem eliminado"})
}

// CancelItem: retiro iniciado por el cliente, sujeto a la regla de
// elegibilidad (pendiente, directo sin servir, o ventana de gracia de 30s).
func CancelItem(c *fiber.Ctx) error {
	itemId := c.Locals("inputId").(int)
	claim := helper.GetClaimsFromToken(c)
	orgID := claim.OrganizationId

	db := database.DB
	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	item, order, err := loadItemForUpdate(tx, itemId, orgID)
	if err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 404, constants.ITEM_NOT_FOUND, err)
	}

	if !helper.CancellableByCustomer(item, item.MenuItem.Direct, time.Now()) {
		tx.Rollback()
		return utils.ErrorResponse(c, 409, constants.ITEM_NOT_CANCELLABLE, nil)
	}

	if err := removeItem(tx, item, order); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
	}

	tx.Commit()

	Publish(orgID, "item_eliminado", fiber.Map{"orderId": order.ID, "itemId": item.ID})

	return utils.SuccessResponse(c, 200, fiber.Map{"message": "Ítem cancelado"})
}
