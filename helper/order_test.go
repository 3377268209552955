package helper

import (
	"testing"
	"time"

	"resto_manager/model"
)

func TestCanTransitionOrder(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"nuevo a en_cocina", model.OrderNuevo, model.OrderEnCocina, true},
		{"nuevo a pagado (pago por adelantado)", model.OrderNuevo, model.OrderPagado, true},
		{"servido a listo_pagar", model.OrderServido, model.OrderListoPagar, true},
		{"en_cocina hacia atrás", model.OrderEnCocina, model.OrderNuevo, false},
		{"cancelar orden activa", model.OrderEnCocina, model.OrderCancelado, true},
		{"cancelar orden pagada", model.OrderPagado, model.OrderCancelado, false},
		{"salir de cancelado", model.OrderCancelado, model.OrderNuevo, false},
		{"estado inventado", model.OrderNuevo, "volando", false},
		{"mismo estado", model.OrderListo, model.OrderListo, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransitionOrder(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransitionOrder(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCanTransitionItem(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pendiente a en_preparacion", model.ItemPendiente, model.ItemEnPreparacion, true},
		{"pendiente a servido (directo)", model.ItemPendiente, model.ItemServido, true},
		{"listo hacia atrás", model.ItemListo, model.ItemPendiente, false},
		{"mismo estado", model.ItemListo, model.ItemListo, false},
		{"estado inválido", model.ItemPendiente, "cancelado", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransitionItem(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransitionItem(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestApplyItemStatusTimestampsOnce(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(10 * time.Minute)

	item := model.OrderItem{Status: model.ItemPendiente}

	ApplyItemStatus(&item, model.ItemEnPreparacion, now)
	if item.StartedAt == nil || !item.StartedAt.Equal(now) {
		t.Fatalf("StartedAt no quedó en %v: %v", now, item.StartedAt)
	}

	// Saltar a servido fija completed y served, sin tocar started.
	ApplyItemStatus(&item, model.ItemServido, later)
	if !item.StartedAt.Equal(now) {
		t.Errorf("StartedAt fue sobrescrito: %v", item.StartedAt)
	}
	if item.CompletedAt == nil || !item.CompletedAt.Equal(later) {
		t.Errorf("CompletedAt = %v, want %v", item.CompletedAt, later)
	}
	if item.ServedAt == nil || !item.ServedAt.Equal(later) {
		t.Errorf("ServedAt = %v, want %v", item.ServedAt, later)
	}

	// Re-aplicar es no-op sobre las marcas ya puestas.
	evenLater := later.Add(time.Hour)
	ApplyItemStatus(&item, model.ItemServido, evenLater)
	if !item.CompletedAt.Equal(later) || !item.ServedAt.Equal(later) {
		t.Errorf("re-aplicar sobrescribió timestamps: completed=%v served=%v", item.CompletedAt, item.ServedAt)
	}
}

func TestSplitItemPreservesTotals(t *testing.T) {
	item := model.OrderItem{
		OrderID:    7,
		MenuItemID: 3,
		Quantity:   5,
		UnitPrice:  1000000, // 10000.00 COP
		Status:     model.ItemEnPreparacion,
		Notes:      "sin cebolla",
	}
	item.ID = 42

	remainder, split := SplitItem(item, 2)

	if remainder.Quantity+split.Quantity != 5 {
		t.Fatalf("suma de cantidades = %d, want 5", remainder.Quantity+split.Quantity)
	}
	original := item.UnitPrice * int64(item.Quantity)
	combined := remainder.UnitPrice*int64(remainder.Quantity) + split.UnitPrice*int64(split.Quantity)
	if combined != original {
		t.Errorf("precio extendido combinado = %d, want %d", combined, original)
	}
	if split.ID != 0 {
		t.Errorf("la línea nueva debe salir sin ID, tiene %d", split.ID)
	}
	if remainder.ID != 42 {
		t.Errorf("la línea original debe conservar su ID, tiene %d", remainder.ID)
	}
	if split.Notes != item.Notes || split.MenuItemID != item.MenuItemID || split.OrderID != item.OrderID {
		t.Errorf("la línea nueva no conserva los datos de la original: %+v", split)
	}
}

func TestCancellableByCustomer(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	txID := uint(9)

	newItem := func(status string, age time.Duration, txn *uint, served *time.Time) model.OrderItem {
		item := model.OrderItem{Status: status, TransactionID: txn, ServedAt: served}
		item.CreatedAt = now.Add(-age)
		return item
	}

	tests := []struct {
		name   string
		item   model.OrderItem
		direct bool
		want   bool
	}{
		{"pendiente siempre", newItem(model.ItemPendiente, time.Hour, nil, nil), false, true},
		{"en preparación hace 10s", newItem(model.ItemEnPreparacion, 10*time.Second, nil, nil), false, true},
		{"en preparación hace 40s", newItem(model.ItemEnPreparacion, 40*time.Second, nil, nil), false, false},
		{"directo listo sin servir", newItem(model.ItemListo, time.Minute, nil, nil), true, true},
		{"directo listo ya servido", newItem(model.ItemListo, time.Minute, nil, &now), true, false},
		{"de cocina listo", newItem(model.ItemListo, time.Minute, nil, nil), false, false},
		{"servido", newItem(model.ItemServido, time.Minute, nil, nil), false, false},
		{"pendiente pero pagado", newItem(model.ItemPendiente, time.Minute, &txID, nil), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CancellableByCustomer(tt.item, tt.direct, now); got != tt.want {
				t.Errorf("CancellableByCustomer() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestItemFrozen(t *testing.T) {
	txID := uint(3)

	free := model.OrderItem{Status: model.ItemServido}
	if ItemFrozen(free) {
		t.Error("un ítem sin transacción no está congelado")
	}

	// Enlazado a una transacción: congelado sin importar el estado.
	for _, status := range []string{model.ItemPendiente, model.ItemEnPreparacion, model.ItemListo, model.ItemServido} {
		paid := model.OrderItem{Status: status, TransactionID: &txID}
		if !ItemFrozen(paid) {
			t.Errorf("ítem pagado en estado %s debe estar congelado", status)
		}
	}
}

func TestDedupSortIDs(t *testing.T) {
	tests := []struct {
		name string
		in   []uint
		want []uint
	}{
		{"desordenado", []uint{9, 2, 7}, []uint{2, 7, 9}},
		{"con repetidos", []uint{5, 1, 5, 1, 3}, []uint{1, 3, 5}},
		{"ya ordenado", []uint{1, 2, 3}, []uint{1, 2, 3}},
		{"vacío", nil, []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DedupSortIDs(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("DedupSortIDs(%v) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("DedupSortIDs(%v) = %v, want %v", tt.in, got, tt.want)
				}
			}
		})
	}
}

func TestItemsTotalAndPaidTotal(t *testing.T) {
	// Escenario: 2x A (10000.00) + 1x B (5000.00) = 25000.00
	items := []model.OrderItem{
		{Quantity: 2, UnitPrice: 1000000},
		{Quantity: 1, UnitPrice: 500000},
	}
	if got := ItemsTotal(items); got != 2500000 {
		t.Fatalf("ItemsTotal = %d, want 2500000", got)
	}

	// Pago parcial de 15000.00 (1x A + B completa) no cubre el total.
	txs := []model.Transaction{
		{Amount: 1500000, Completed: true},
		{Amount: 9999999, Completed: false}, // incompleta: no cuenta
	}
	paid := PaidTotal(txs)
	if paid != 1500000 {
		t.Fatalf("PaidTotal = %d, want 1500000", paid)
	}
	if paid >= ItemsTotal(items) {
		t.Error("el pago parcial no debe marcar la orden como pagada")
	}

	// Un segundo pago por el saldo exacto sí la cierra.
	txs = append(txs, model.Transaction{Amount: 1000000, Completed: true})
	if PaidTotal(txs) < ItemsTotal(items) {
		t.Error("el saldo completo debe cubrir el total")
	}
}
