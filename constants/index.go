package constants

// Roles
const (
	ROLE_ADMIN    = "admin"
	ROLE_MESERO   = "mesero"
	ROLE_COCINERO = "cocinero"
	ROLE_CAJERO   = "cajero"
)

// Mensajes de error comunes
const (
	DATA_INPUT_IS_NOT_NUMBER = "El parámetro debe ser un número"
	NOT_ADMIN                = "Requiere permisos de administrador"
	ORDER_NOT_FOUND          = "Orden no encontrada"
	ITEM_NOT_FOUND           = "Ítem no encontrado"
	TABLE_NOT_FOUND          = "Mesa no encontrada"
	MENU_ITEM_NOT_FOUND      = "Producto no encontrado"
	INVENTORY_NOT_FOUND      = "Insumo no encontrado"
	INVALID_STATUS           = "Estado no válido"
	ITEM_ALREADY_PAID        = "El ítem ya fue pagado"
	ITEM_NOT_CANCELLABLE     = "El ítem ya no se puede cancelar"
	TABLE_NUMBER_TAKEN       = "Ya existe una mesa con ese número"
	STOCK_SHORTFALL          = "Inventario insuficiente"
	ORDER_ALREADY_CLAIMED    = "La orden ya fue tomada por otro mesero"
	INTERNAL_ERROR           = "Error interno"
)
