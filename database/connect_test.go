package database

import (
	"strings"
	"testing"

	"resto_manager/model"
)

// El índice parcial de unicidad debe excluir exactamente los estados
// terminales: si cambia el conjunto de estados y nadie actualiza el DDL,
// una orden cerrada bloquearía crear la siguiente en la misma mesa.
func TestActiveOrderIndexMatchesTerminalStatuses(t *testing.T) {
	if !strings.Contains(activeOrderIndexSQL, "UNIQUE INDEX") {
		t.Fatalf("el índice de orden activa no es único: %s", activeOrderIndexSQL)
	}
	if !strings.Contains(activeOrderIndexSQL, "(organization_id, table_number)") {
		t.Errorf("el índice no cubre (organization_id, table_number): %s", activeOrderIndexSQL)
	}
	for _, status := range []string{model.OrderPagado, model.OrderCancelado} {
		if !strings.Contains(activeOrderIndexSQL, "'"+status+"'") {
			t.Errorf("el índice no excluye el estado terminal %q: %s", status, activeOrderIndexSQL)
		}
	}
}
