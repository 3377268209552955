package model

import "time"

// Estados de la orden
const (
	OrderNuevo      = "nuevo"
	OrderEnCocina   = "en_cocina"
	OrderListo      = "listo"
	OrderServido    = "servido"
	OrderListoPagar = "listo_pagar"
	OrderPagado     = "pagado"
	OrderCancelado  = "cancelado"
)

// Estados del ítem
const (
	ItemPendiente     = "pendiente"
	ItemEnPreparacion = "en_preparacion"
	ItemListo         = "listo"
	ItemServido       = "servido"
)

// Order es la raíz del agregado: posee sus ítems y transacciones (borrado en
// cascada). TableNumber se resuelve contra Table por (organization_id, number).
type Order struct {
	DTO
	PublicCode     string        `gorm:"uniqueIndex;size:20" json:"publicCode"`
	TableNumber    int           `gorm:"not null;index:idx_org_order_table" json:"tableNumber"`
	OrganizationID uint          `gorm:"not null;index:idx_org_order_table" json:"organizationId"`
	Status         string        `gorm:"not null;default:'nuevo'" json:"status"`
	Subtotal       int64         `json:"subtotal"` // centavos
	Total          int64         `json:"total"`    // centavos
	Tip            int64         `json:"tip"`      // centavos
	Notes          string        `json:"notes"`
	WaiterID       *uint         `json:"waiterId"`
	Waiter         *User         `gorm:"foreignKey:WaiterID" json:"waiter,omitempty"`
	Organization   Organization  `gorm:"foreignKey:OrganizationID" json:"-"`
	Items          []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Transactions   []Transaction `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
}

// OrderItem. UnitPrice se captura al ordenar y no cambia aunque cambie el
// menú. TransactionID != nil significa pagado: el estado queda congelado.
type OrderItem struct {
	DTO
	OrderID       uint         `gorm:"not null;index" json:"orderId"`
	MenuItemID    uint         `gorm:"not null" json:"menuItemId"`
	MenuItem      MenuItem     `gorm:"foreignKey:MenuItemID" json:"menuItem"`
	Quantity      int          `gorm:"not null" json:"quantity"`
	UnitPrice     int64        `gorm:"not null" json:"unitPrice"` // centavos
	Status        string       `gorm:"not null;default:'pendiente'" json:"status"`
	Notes         string       `json:"notes"`
	StartedAt     *time.Time   `json:"startedAt"`
	CompletedAt   *time.Time   `json:"completedAt"`
	ServedAt      *time.Time   `json:"servedAt"`
	TransactionID *uint        `json:"transactionId"`
	Transaction   *Transaction `gorm:"foreignKey:TransactionID" json:"-"`
}

type CreateOrderInput struct {
	TableNumber int                    `json:"tableNumber" validate:"required,gt=0"`
	Notes       string                 `json:"notes"`
	Items       []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type CreateOrderItemInput struct {
	MenuItemID uint   `json:"menuItemId" validate:"required,gt=0"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
	Notes      string `json:"notes"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required,oneof=nuevo en_cocina listo servido listo_pagar pagado cancelado"`
}

type UpdateItemInput struct {
	Status   string  `json:"status" validate:"omitempty,oneof=pendiente en_preparacion listo servido"`
	Notes    *string `json:"notes"`
	Quantity *int    `json:"quantity" validate:"omitempty,gt=0"` // parcial: divide la línea
}

type BatchUpdateItemsInput struct {
	ItemIDs []uint `json:"itemIds" validate:"required,min=1"`
	Status  string `json:"status" validate:"required,oneof=pendiente en_preparacion listo servido"`
}
