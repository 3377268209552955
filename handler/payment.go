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
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Pay registra un pago (total o parcial) contra una orden, todo en una
// transacción con la fila de la orden bloqueada: dos pagos concurrentes se
// serializan y el segundo ve las transacciones del primero, así que nunca
// pagan de más entre los dos ni enlazan el mismo ítem dos veces.
//
// Con detalle de ítems, pagar una cantidad parcial divide la línea: la parte
// pagada queda en una línea nueva enlazada a la transacción (congelada), el
// resto conserva la línea original. Sin detalle, itemIds enlaza líneas
// completas (modo legado de la caja).
func Pay(c *fiber.Ctx) error {
	input := c.Locals("input").(model.PayInput)
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
		Where("id = ? AND organization_id = ?", input.OrderID, orgID).
		First(&order).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 404, constants.ORDER_NOT_FOUND, err)
	}

	if helper.IsTerminalOrderStatus(order.Status) {
		tx.Rollback()
		return utils.ErrorResponse(c, 409, "La orden ya está cerrada", nil)
	}

	var prevTxs []model.Transaction
	if err := tx.Where("order_id = ?", order.ID).Find(&prevTxs).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
	}

	alreadyPaid := helper.PaidTotal(prevTxs)
	if alreadyPaid+input.Amount > order.Total {
		tx.Rollback()
		return utils.ErrorResponse(c, 409, "El pago excede el saldo de la orden",
			fmt.Errorf("pagado %d + pago %d > total %d", alreadyPaid, input.Amount, order.Total))
	}

	txn := model.Transaction{
		OrderID:   order.ID,
		CashierID: claim.UserId,
		Amount:    input.Amount,
		Tip:       input.Tip,
		Method:    input.Method,
		Completed: true,
	}
	if err := tx.Create(&txn).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, 500, "No se pudo registrar el pago", err)
	}

	if len(input.Items) > 0 {
		for _, detail := range input.Items {
			var item model.OrderItem
			if err := tx.Where("id = ? AND order_id = ?", detail.ItemID, order.ID).First(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					tx.Rollback()
					return utils.ErrorResponse(c, 404, constants.ITEM_NOT_FOUND, fmt.Errorf("ítem %d", detail.ItemID))
				}
				tx.Rollback()
				return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
			}

			// Ya enlazado a otra transacción: se omite.
			if helper.ItemFrozen(item) {
				continue
			}

			if detail.Quantity >= item.Quantity {
				// Paga la línea completa.
				if err := tx.Model(&item).Update("transaction_id", txn.ID).Error; err != nil {
					tx.Rollback()
					return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
				}
				continue
			}

			// Pago parcial: la cantidad pagada se separa en una línea
			// hermana enlazada a la transacción.
			remainder, split := helper.SplitItem(item, detail.Quantity)
			split.TransactionID = &txn.ID

			if err := tx.Model(&model.OrderItem{}).Where("id = ?", item.ID).
				Update("quantity", remainder.Quantity).Error; err != nil {
				tx.Rollback()
				return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
			}
			if err := tx.Create(&split).Error; err != nil {
				tx.Rollback()
				return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
			}
		}
	} else if len(input.ItemIDs) > 0 {
		// Modo legado: enlaza líneas completas aún sin pagar.
		if err := tx.Model(&model.OrderItem{}).
			Where("id IN ? AND order_id = ? AND transaction_id IS NULL", input.ItemIDs, order.ID).
			Update("transaction_id", txn.ID).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
		}
	}

	totalPaid := alreadyPaid + input.Amount
	isFullyPaid := totalPaid >= order.Total

	updates := map[string]any{}
	if input.Tip > 0 {
		// La propina se acumula aunque el pago no cierre la orden.
		updates["tip"] = gorm.Expr("tip + ?", input.Tip)
	}
	newStatus := order.Status
	if isFullyPaid {
		newStatus = model.OrderPagado
		updates["status"] = newStatus
	}
	if len(updates) > 0 {
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
		}
	}

	if isFullyPaid {
		if err := helper.ReleaseTableIfFree(tx, orgID, order.TableNumber, order.ID); err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, 500, constants.INTERNAL_ERROR, err)
		}
	}

	tx.Commit()

	result := model.PayResult{
		Transaction: txn,
		NewStatus:   newStatus,
		IsFullyPaid: isFullyPaid,
	}
	Publish(orgID, "pago_registrado", result)

	return utils.SuccessResponse(c, 200, result)
}

// GetOrderTransactions lista los pagos de una orden (vista de caja).
func GetOrderTransactions(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)
	claim := helper.GetClaimsFromToken(c)

	var order model.Order
	if err := database.DB.
		Preload("Transactions").
		Where("id = ? AND organization_id = ?", orderId, claim.OrganizationId).
		First(&order).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.ORDER_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"transactions": order.Transactions,
		"total":        order.Total,
		"paid":         helper.PaidTotal(order.Transactions),
	})
}
