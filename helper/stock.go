package helper

import (
	"fmt"
	"math"

	"resto_manager/model"

	"gorm.io/gorm"
)

// Centinela para productos sin ningún control de inventario.
const UnlimitedStock = math.MaxInt32

// ComputeAvailability calcula el stock disponible de un producto ya cargado
// con sus ingredientes. Con UseInventory es el mínimo de
// floor(stockInsumo / consumoPorUnidad) entre los ingredientes; un producto
// con UseInventory y sin ingredientes de consumo positivo se trata como
// agotado.
// Sin UseInventory manda el contador directo, y si tampoco hay contador el
// producto es ilimitado.
func ComputeAvailability(item model.MenuItem) (available int, unlimited bool) {
	if !item.UseInventory {
		if item.Stock != nil {
			return *item.Stock, false
		}
		return UnlimitedStock, true
	}

	min := UnlimitedStock
	counted := false
	for _, ing := range item.Ingredients {
		if ing.Quantity <= 0 {
			continue
		}
		counted = true
		units := int(math.Floor(ing.InventoryItem.CurrentStock / ing.Quantity))
		if units < min {
			min = units
		}
	}
	// Sin ningún ingrediente de consumo positivo no hay de dónde producir:
	// cuenta como agotado, no como ilimitado.
	if !counted {
		return 0, false
	}
	if min < 0 {
		min = 0
	}
	return min, false
}

// ValidateStock revisa disponibilidad para cada línea pedida antes de tocar
// nada. Devuelve un error descriptivo por el primer faltante. Es una revisión
// consultiva: la garantía real la da el descuento condicional en DeductStock.
func ValidateStock(db *gorm.DB, orgID uint, items []model.CreateOrderItemInput) error {
	for _, req := range items {
		var menuItem model.MenuItem
		if err := db.Preload("Ingredients").Preload("Ingredients.InventoryItem").
			Where("id = ? AND organization_id = ?", req.MenuItemID, orgID).
			First(&menuItem).Error; err != nil {
			return fmt.Errorf("producto %d no encontrado", req.MenuItemID)
		}

		available, unlimited := ComputeAvailability(menuItem)
		if !unlimited && available < req.Quantity {
			return fmt.Errorf("inventario insuficiente para %q: disponibles %d, pedidos %d", menuItem.Name, available, req.Quantity)
		}
	}
	return nil
}

// DeductStock descuenta inventario dentro de la transacción de creación de la
// orden. El UPDATE es condicional (stock >= consumo): si otra orden
// concurrente ganó las existencias, 0 filas afectadas ⇒ error y rollback
// completo. Así no se sobrevende aunque ValidateStock haya pasado.
func DeductStock(tx *gorm.DB, menuItem model.MenuItem, quantity int) error {
	if !menuItem.UseInventory {
		if menuItem.Stock == nil {
			return nil
		}
		res := tx.Model(&model.MenuItem{}).
			Where("id = ? AND stock >= ?", menuItem.ID, quantity).
			Update("stock", gorm.Expr("stock - ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("inventario insuficiente para %q", menuItem.Name)
		}
		return nil
	}

	for _, ing := range menuItem.Ingredients {
		required := ing.Quantity * float64(quantity)
		res := tx.Model(&model.InventoryItem{}).
			Where("id = ? AND current_stock >= ?", ing.InventoryItemID, required).
			Update("current_stock", gorm.Expr("current_stock - ?", required))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("inventario insuficiente para %q", menuItem.Name)
		}
	}
	return nil
}
