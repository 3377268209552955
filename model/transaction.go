package model

// Transaction es un pago (total o parcial) contra una orden. Varios ítems
// pueden apuntar a la misma transacción.
type Transaction struct {
	DTO
	OrderID   uint   `gorm:"not null;index" json:"orderId"`
	CashierID uint   `gorm:"not null" json:"cashierId"`
	Amount    int64  `gorm:"not null" json:"amount"` // centavos
	Tip       int64  `json:"tip"`                    // centavos
	Method    string `gorm:"not null" json:"method"` // efectivo, tarjeta, transferencia
	Completed bool   `gorm:"default:false" json:"completed"`
}

type PayInput struct {
	OrderID uint            `json:"orderId" validate:"required,gt=0"`
	Amount  int64           `json:"amount" validate:"required,gt=0"`
	Tip     int64           `json:"tip" validate:"omitempty,gte=0"`
	Method  string          `json:"method" validate:"required,oneof=efectivo tarjeta transferencia"`
	Items   []PayItemDetail `json:"items" validate:"omitempty,dive"`
	ItemIDs []uint          `json:"itemIds"` // modo legado: enlaza líneas completas
}

type PayItemDetail struct {
	ItemID   uint `json:"itemId" validate:"required,gt=0"`
	Quantity int  `json:"quantity" validate:"required,gt=0"`
}

type PayResult struct {
	Transaction Transaction `json:"transaction"`
	NewStatus   string      `json:"newStatus"`
	IsFullyPaid bool        `json:"isFullyPaid"`
}
