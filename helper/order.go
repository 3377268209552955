package helper

import (
	"sort"
	"time"

	"resto_manager/model"
)

// Ventana de gracia para cancelar un ítem que ya entró a preparación.
const CancelGraceWindow = 30 * time.Second

var orderStatusRank = map[string]int{
	model.OrderNuevo:      0,
	model.OrderEnCocina:   1,
	model.OrderListo:      2,
	model.OrderServido:    3,
	model.OrderListoPagar: 4,
	model.OrderPagado:     5,
}

var itemStatusRank = map[string]int{
	model.ItemPendiente:     0,
	model.ItemEnPreparacion: 1,
	model.ItemListo:         2,
	model.ItemServido:       3,
}

func ValidOrderStatus(s string) bool {
	if s == model.OrderCancelado {
		return true
	}
	_, ok := orderStatusRank[s]
	return ok
}

func IsTerminalOrderStatus(s string) bool {
	return s == model.OrderPagado || s == model.OrderCancelado
}

// CanTransitionOrder: solo hacia adelante en la secuencia; cancelado desde
// cualquier estado no terminal. De un estado terminal no se sale.
func CanTransitionOrder(from, to string) bool {
	if IsTerminalOrderStatus(from) {
		return false
	}
	if to == model.OrderCancelado {
		return true
	}
	fromRank, ok1 := orderStatusRank[from]
	toRank, ok2 := orderStatusRank[to]
	if !ok1 || !ok2 {
		return false
	}
	return toRank > fromRank
}

func ValidItemStatus(s string) bool {
	_, ok := itemStatusRank[s]
	return ok
}

func CanTransitionItem(from, to string) bool {
	fromRank, ok1 := itemStatusRank[from]
	toRank, ok2 := itemStatusRank[to]
	if !ok1 || !ok2 {
		return false
	}
	return toRank > fromRank
}

// ApplyItemStatus cambia el estado y fija los timestamps una sola vez:
// repetir una transición no sobrescribe marcas ya puestas.
func ApplyItemStatus(item *model.OrderItem, status string, now time.Time) {
	item.Status = status
	rank := itemStatusRank[status]
	if rank >= itemStatusRank[model.ItemEnPreparacion] && item.StartedAt == nil {
		t := now
		item.StartedAt = &t
	}
	if rank >= itemStatusRank[model.ItemListo] && item.CompletedAt == nil {
		t := now
		item.CompletedAt = &t
	}
	if rank >= itemStatusRank[model.ItemServido] && item.ServedAt == nil {
		t := now
		item.ServedAt = &t
	}
}

// SplitItem divide una línea de cantidad q en (q-k, k) conservando precio
// unitario y notas. La nueva línea sale sin ID para que GORM la inserte.
// La suma de cantidades y el precio extendido se conservan.
func SplitItem(item model.OrderItem, k int) (remainder model.OrderItem, split model.OrderItem) {
	remainder = item
	remainder.Quantity = item.Quantity - k

	split = item
	split.DTO = model.DTO{}
	split.Quantity = k
	// Sin asociaciones cargadas: la línea va limpia al INSERT.
	split.MenuItem = model.MenuItem{}
	split.Transaction = nil
	return remainder, split
}

// ItemFrozen: una línea enlazada a una transacción quedó pagada; su estado y
// cantidad no cambian más.
func ItemFrozen(item model.OrderItem) bool {
	return item.TransactionID != nil
}

// DedupSortIDs devuelve los IDs únicos en orden ascendente. Los lotes toman
// candados en este orden fijo para que dos lotes concurrentes sobre las mismas
// órdenes no se bloqueen mutuamente en cruz.
func DedupSortIDs(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	seen := map[uint]bool{}
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CancellableByCustomer: el cliente puede retirar un ítem solo si
//   - sigue pendiente, o
//   - es un producto directo (sin cocina) listo pero aún no servido, o
//   - está en preparación pero fue creado hace menos de 30 segundos.
func CancellableByCustomer(item model.OrderItem, direct bool, now time.Time) bool {
	if item.TransactionID != nil {
		return false
	}
	switch item.Status {
	case model.ItemPendiente:
		return true
	case model.ItemListo:
		return direct && item.ServedAt == nil
	case model.ItemEnPreparacion:
		return now.Sub(item.CreatedAt) < CancelGraceWindow
	}
	return false
}

// ItemsTotal suma precio extendido de las líneas (centavos).
func ItemsTotal(items []model.OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += it.UnitPrice * int64(it.Quantity)
	}
	return total
}

// PaidTotal suma las transacciones completadas (centavos).
func PaidTotal(txs []model.Transaction) int64 {
	var total int64
	for _, t := range txs {
		if t.Completed {
			total += t.Amount
		}
	}
	return total
}
