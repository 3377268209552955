package helper

import (
	"testing"

	"resto_manager/model"
	"resto_manager/utils"
)

func TestComputeAvailability(t *testing.T) {
	ing := func(stock, perUnit float64) model.MenuItemIngredient {
		return model.MenuItemIngredient{
			Quantity:      perUnit,
			InventoryItem: model.InventoryItem{CurrentStock: stock},
		}
	}

	tests := []struct {
		name          string
		item          model.MenuItem
		wantAvailable int
		wantUnlimited bool
	}{
		{
			name:          "contador directo",
			item:          model.MenuItem{Stock: utils.Ptr(48)},
			wantAvailable: 48,
		},
		{
			name:          "sin ningún control",
			item:          model.MenuItem{},
			wantAvailable: UnlimitedStock,
			wantUnlimited: true,
		},
		{
			name: "mínimo entre ingredientes",
			item: model.MenuItem{UseInventory: true, Ingredients: []model.MenuItemIngredient{
				ing(60, 1),    // 60 unidades
				ing(12000, 150), // 80 unidades
			}},
			wantAvailable: 60,
		},
		{
			name: "floor de fracciones",
			item: model.MenuItem{UseInventory: true, Ingredients: []model.MenuItemIngredient{
				ing(100, 18), // 5.55 → 5
			}},
			wantAvailable: 5,
		},
		{
			name: "ingrediente agotado",
			item: model.MenuItem{UseInventory: true, Ingredients: []model.MenuItemIngredient{
				ing(60, 1),
				ing(0, 150),
			}},
			wantAvailable: 0,
		},
		{
			// Política: usar inventario sin ingredientes configurados
			// cuenta como agotado, no como ilimitado.
			name:          "useInventory sin ingredientes",
			item:          model.MenuItem{UseInventory: true},
			wantAvailable: 0,
		},
		{
			// Ingredientes configurados pero ninguno con consumo positivo:
			// también agotado, nunca "ilimitado" por accidente.
			name: "useInventory con ingredientes de consumo cero",
			item: model.MenuItem{UseInventory: true, Ingredients: []model.MenuItemIngredient{
				ing(60, 0),
				ing(100, -1),
			}},
			wantAvailable: 0,
		},
		{
			name: "useInventory ignora el contador directo",
			item: model.MenuItem{UseInventory: true, Stock: utils.Ptr(99), Ingredients: []model.MenuItemIngredient{
				ing(3, 1),
			}},
			wantAvailable: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			available, unlimited := ComputeAvailability(tt.item)
			if available != tt.wantAvailable || unlimited != tt.wantUnlimited {
				t.Errorf("ComputeAvailability() = (%d, %v), want (%d, %v)",
					available, unlimited, tt.wantAvailable, tt.wantUnlimited)
			}
		})
	}
}
