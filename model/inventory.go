package model

// InventoryItem es un insumo en bodega. CurrentStock puede quedar en cero
// pero nunca negativo: el descuento es condicional (ver helper/stock.go).
type InventoryItem struct {
	DTO
	Name           string       `gorm:"not null" json:"name"`
	Unit           string       `json:"unit"` // gr, ml, unidad...
	CurrentStock   float64      `gorm:"not null;default:0" json:"currentStock"`
	OrganizationID uint         `gorm:"not null;index" json:"organizationId"`
	Organization   Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

type CreateInventoryInput struct {
	Name         string  `json:"name" validate:"required"`
	Unit         string  `json:"unit"`
	CurrentStock float64 `json:"currentStock" validate:"omitempty,gte=0"`
}

type AdjustStockInput struct {
	Delta float64 `json:"delta" validate:"required"`
}
