package handler

import (
	"errors"
	"fmt"

	"resto_manager/constants"
	"resto_manager/database"
	"resto_manager/helper"
	"resto_manager/model"
	"resto_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateOrder crea la orden de una mesa, o si la mesa ya tiene una orden
// activa fusiona los ítems nuevos en ella (nunca dos órdenes activas por
// mesa). Validación de stock, descuento de inventario, creación y ocupación
// de mesa van en una sola transacción.
func CreateOrder(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateOrderInput)
	claim := helper.GetClaimsFromToken(c)
	orgID := claim.OrganizationId

	db := database.DB

	// Revisión consultiva: error amable antes de abrir la transacción. La
	// garantía real contra sobreventa es el descuento condicional de abajo.
	if err := helper.ValidateStock(db, orgID, input.Items); err != nil {
		return utils.ErrorResponse(c, 409, constants.STOCK_SHORTFALL, err)
	}

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// La fila de la mesa, única por (org, número), se bloquea primero: es la
	// que serializa TODAS las creaciones sobre la mesa. Bloquear solo la orden
	// activa no basta cuando aún no existe (dos primeras órdenes simultáneas
	// verían cero filas y crearían las dos).
	var table model.Table
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("organization_id = ? AND number = ?", orgID, input.TableNumber).
		First(&table).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 404, constants.TABLE_NOT_FOUND, err)
	}

	var order model.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("organization_id = ? AND table_number = ? AND status NOT IN ?",
			orgID, input.TableNumber, []string{model.OrderPagado, model.OrderCancelado}).
		First(&order).Error

	merging := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
	}

	if !merging {
		order = model.Order{
			PublicCode:     "ORD-" + uuid.New().String()[:8],
			TableNumber:    input.TableNumber,
			OrganizationID: orgID,
			Status:         model.OrderNuevo,
			Notes:          input.Notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, 500, "No se pudo crear la orden", err)
		}
	}

	var addedTotal int64
	var newItems []model.OrderItem
	for _, req := range input.Items {
		var menuItem model.MenuItem
		if err := tx.Preload("Ingredients").
			Where("id = ? AND organization_id = ?", req.MenuItemID, orgID).
			First(&menuItem).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, 404, constants.MENU_ITEM_NOT_FOUND, err)
		}

		if err := helper.DeductStock(tx, menuItem, req.Quantity); err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, 409, constants.STOCK_SHORTFALL, err)
		}

		item := model.OrderItem{
			OrderID:    order.ID,
			MenuItemID: menuItem.ID,
			Quantity:   req.Quantity,
			UnitPrice:  menuItem.Price,
			Status:     model.ItemPendiente,
			Notes:      req.Notes,
		}
		// Productos directos no pasan por cocina: nacen listos, sin
		// marcas de tiempo de preparación.
		if menuItem.Direct {
			item.Status = model.ItemListo
		}
		newItems = append(newItems, item)
		addedTotal += menuItem.Price * int64(req.Quantity)
	}

	if err := tx.Create(&newItems).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, "No se pudieron crear los ítems", err)
	}

	updates := map[string]any{
		"subtotal": gorm.Expr("subtotal + ?", addedTotal),
		"total":    gorm.Expr("total + ?", addedTotal),
	}
	if merging && input.Notes != "" {
		if order.Notes != "" {
			updates["notes"] = order.Notes + " | " + input.Notes
		} else {
			updates["notes"] = input.Notes
		}
	}
	if err := tx.Model(&order).Updates(updates).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
	}

	if !merging && table.Blockable {
		if err := helper.OccupyTable(tx, orgID, input.TableNumber); err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
		}
	}

	tx.Commit()

	var full model.Order
	db.Preload("Items").Preload("Items.MenuItem").First(&full, order.ID)

	event := "nueva_orden"
	if merging {
		event = "orden_actualizada"
	}
	Publish(orgID, event, full)

	return utils.SuccessResponse(c, 201, fiber.Map{
		"order":  full,
		"merged": merging,
	})
}

func GetOrders(c *fiber.Ctx) error {
	claim := helper.GetClaimsFromToken(c)

	query := database.DB.
		Preload("Items").
		Preload("Items.MenuItem").
		Preload("Waiter").
		Where("organization_id = ?", claim.OrganizationId)

	if status := c.Query("status"); status != "" {
		if !helper.ValidOrderStatus(status) {
			return utils.ErrorResponse(c, 400, constants.INVALID_STATUS, nil)
		}
		query = query.Where("status = ?", status)
	} else {
		// Por defecto, el tablero: solo órdenes activas.
		query = query.Where("status NOT IN ?", []string{model.OrderPagado, model.OrderCancelado})
	}

	limit := c.QueryInt("limit")
	page := c.QueryInt("page")
	query = utils.ApplyPagination(query, &limit, &page)

	var orders []model.Order
	if err := query.Order("created_at asc").Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Error cargando órdenes", err)
	}

	return utils.SuccessResponse(c, 200, orders)
}

func GetOrderById(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)
	claim := helper.GetClaimsFromToken(c)

	var order model.Order
	if err := database.DB.
		Preload("Items").
		Preload("Items.MenuItem").
		Preload("Transactions").
		Preload("Waiter").
		Where("id = ? AND organization_id = ?", orderId, claim.OrganizationId).
		First(&order).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.ORDER_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, 200, order)
}

// UpdateOrderStatus aplica una transición explícita del estado de la orden.
// listo_pagar se auto-promueve a pagado si las transacciones completadas ya
// cubren el total (pago por adelantado). Al llegar a un estado terminal se
// libera la mesa si no le quedan órdenes activas.
func UpdateOrderStatus(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.UpdateOrderStatusInput)
	claim := helper.GetClaimsFromToken(c)
	orgID := claim.OrganizationId

	db := database.DB
	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var order model.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Transactions").
		Where("id = ? AND organization_id = ?", orderId, orgID).
		First(&order).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 404, constants.ORDER_NOT_FOUND, err)
	}

	newStatus := input.Status
	if !helper.CanTransitionOrder(order.Status, newStatus) {
		tx.Rollback()
		return utils.ErrorResponse(c, 409, constants.INVALID_STATUS,
			fmt.Errorf("transición %s → %s no permitida", order.Status, newStatus))
	}

	if newStatus == model.OrderListoPagar {
		if helper.PaidTotal(order.Transactions) >= order.Total {
			newStatus = model.OrderPagado
		}
	}

	if err := tx.Model(&order).Update("status", newStatus).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
	}

	if helper.IsTerminalOrderStatus(newStatus) {
		if err := helper.ReleaseTableIfFree(tx, orgID, order.TableNumber, order.ID); err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
		}
	}

	tx.Commit()

	order.Status = newStatus
	Publish(orgID, "orden_actualizada", order)

	return utils.SuccessResponse(c, 200, order)
}

// ClaimOrder asigna la orden al mesero que llama, si nadie la tomó antes.
func ClaimOrder(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)
	claim := helper.GetClaimsFromToken(c)

	db := database.DB

	// Update condicional: solo toma la orden si nadie la tiene. Dos meseros
	// simultáneos no pueden ganarla ambos.
	res := db.Model(&model.Order{}).
		Where("id = ? AND organization_id = ? AND (waiter_id IS NULL OR waiter_id = ?)",
			orderId, claim.OrganizationId, claim.UserId).
		Update("waiter_id", claim.UserId)
	if res.Error != nil {
		return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, res.Error)
	}

	var order model.Order
	if err := db.Where("id = ? AND organization_id = ?", orderId, claim.OrganizationId).
		First(&order).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.ORDER_NOT_FOUND, err)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, 409, constants.ORDER_ALREADY_CLAIMED, nil)
	}

	Publish(claim.OrganizationId, "orden_actualizada", order)

	return utils.SuccessResponse(c, 200, order)
}

// DeleteOrder borra la orden con sus ítems y transacciones en una sola
// transacción (sin filas huérfanas) y libera la mesa.
func DeleteOrder(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)
	claim := helper.GetClaimsFromToken(c)
	orgID := claim.OrganizationId

	db := database.DB

	var order model.Order
	if err := db.Where("id = ? AND organization_id = ?", orderId, orgID).First(&order).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.ORDER_NOT_FOUND, err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&model.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&order).Error; err != nil {
			return err
		}
		return helper.ReleaseTableIfFree(tx, orgID, order.TableNumber, order.ID)
	})
	if err != nil {
		return utils.ErrorResponse(c, 500, "No se pudo eliminar la orden", err)
	}

	Publish(orgID, "orden_eliminada", fiber.Map{"orderId": order.ID, "tableNumber": order.TableNumber})

	return utils.SuccessResponse(c, 200, fiber.Map{"message": "Orden eliminada"})
}
