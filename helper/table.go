package helper

import (
	"log"

	"resto_manager/model"

	"gorm.io/gorm"
)

// Único escritor del estado de mesa junto con el endpoint de liberación
// forzada. La mesa se busca siempre por (organization_id, number).

// OccupyTable marca ocupada una mesa bloqueable al crear una orden. No revisa
// si ya estaba ocupada: la regla de fusión de órdenes garantiza que no hay
// dos órdenes activas por mesa.
func OccupyTable(tx *gorm.DB, orgID uint, tableNumber int) error {
	return tx.Model(&model.Table{}).
		Where("organization_id = ? AND number = ? AND blockable = true", orgID, tableNumber).
		Update("status", model.TableOcupada).Error
}

// ReleaseTableIfFree libera la mesa cuando ya no le queda ninguna orden
// activa (distinta de excludeOrderID, la que acaba de cerrar).
func ReleaseTableIfFree(tx *gorm.DB, orgID uint, tableNumber int, excludeOrderID uint) error {
	var count int64
	err := tx.Model(&model.Order{}).
		Where("organization_id = ? AND table_number = ? AND id != ? AND status NOT IN ?",
			orgID, tableNumber, excludeOrderID,
			[]string{model.OrderPagado, model.OrderCancelado}).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	res := tx.Model(&model.Table{}).
		Where("organization_id = ? AND number = ?", orgID, tableNumber).
		Update("status", model.TableDisponible)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Mesa borrada o nunca registrada; la orden cierra igual.
		log.Printf("mesa %d (org %d) no encontrada al liberar", tableNumber, orgID)
	}
	return nil
}
