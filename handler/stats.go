package handler

import (
	"errors"
	"time"

	"resto_manager/constants"
	"resto_manager/database"
	"resto_manager/helper"
	"resto_manager/model"
	"resto_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// RunPrepTimeStats dispara manualmente el agregado de tiempos del día
// (el scheduler lo corre solo a las 23:55 y cada 30 minutos).
func RunPrepTimeStats(c *fiber.Ctx) error {
	claim := helper.GetClaimsFromToken(c)
	if claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, 403, constants.NOT_ADMIN, errors.New("not admin"))
	}

	if err := helper.ComputePrepTimeStats(time.Now()); err != nil {
		return utils.ErrorResponse(c, 500, "Error calculando tiempos de preparación", err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{"message": "Agregado recalculado"})
}

func GetPrepTimeStats(c *fiber.Ctx) error {
	claim := helper.GetClaimsFromToken(c)

	date := c.Query("date")
	if date == "" {
		date = utils.DateKey(time.Now())
	}

	var stats []model.PrepTimeStat
	if err := database.DB.
		Preload("MenuItem").
		Where("organization_id = ? AND date = ?", claim.OrganizationId, date).
		Find(&stats).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Error cargando estadísticas", err)
	}

	return utils.SuccessResponse(c, 200, stats)
}

// GetSalesStats: resumen de ventas del día calendario en hora de Colombia.
func GetSalesStats(c *fiber.Ctx) error {
	claim := helper.GetClaimsFromToken(c)
	db := database.DB

	start, end := utils.DayBounds(time.Now())

	type Stats struct {
		Revenue      int64 `json:"revenue"` // centavos
		Tips         int64 `json:"tips"`    // centavos
		Payments     int64 `json:"payments"`
		PaidOrders   int64 `json:"paidOrders"`
		ActiveOrders int64 `json:"activeOrders"`
	}
	var stats Stats

	db.Raw(`
        SELECT COALESCE(SUM(t.amount), 0)
        FROM transactions t
        JOIN orders o ON o.id = t.order_id
        WHERE t.completed = true
          AND o.organization_id = ?
          AND t.created_at BETWEEN ? AND ?
    `, claim.OrganizationId, start, end).Scan(&stats.Revenue)

	db.Raw(`
        SELECT COALESCE(SUM(t.tip), 0)
        FROM transactions t
        JOIN orders o ON o.id = t.order_id
        WHERE t.completed = true
          AND o.organization_id = ?
          AND t.created_at BETWEEN ? AND ?
    `, claim.OrganizationId, start, end).Scan(&stats.Tips)

	db.Model(&model.Transaction{}).
		Joins("JOIN orders ON orders.id = transactions.order_id").
		Where("transactions.completed = true AND orders.organization_id = ? AND transactions.created_at BETWEEN ? AND ?",
			claim.OrganizationId, start, end).
		Count(&stats.Payments)

	// Órdenes cerradas hoy: las que recibieron un pago completado dentro del
	// día y ya están pagadas. updated_at no sirve: cualquier toque posterior
	// a una orden pagada la volvería a contar.
	db.Raw(`
        SELECT COUNT(DISTINCT o.id)
        FROM orders o
        JOIN transactions t ON t.order_id = o.id
        WHERE o.organization_id = ?
          AND o.status = ?
          AND t.completed = true
          AND t.created_at BETWEEN ? AND ?
    `, claim.OrganizationId, model.OrderPagado, start, end).Scan(&stats.PaidOrders)

	db.Model(&model.Order{}).
		Where("organization_id = ? AND status NOT IN ?",
			claim.OrganizationId, []string{model.OrderPagado, model.OrderCancelado}).
		Count(&stats.ActiveOrders)

	return utils.SuccessResponse(c, 200, stats)
}
