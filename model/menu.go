package model

// MenuItem. Price en centavos. Direct marca productos sin preparación de
// cocina (pasan a "listo" al crearse). Con UseInventory la disponibilidad se
// calcula desde los ingredientes; si no, desde el contador Stock.
type MenuItem struct {
	DTO
	Name           string               `gorm:"not null" json:"name"`
	Category       string               `json:"category"`
	Price          int64                `gorm:"not null" json:"price"`
	Direct         bool                 `gorm:"default:false" json:"direct"`
	UseInventory   bool                 `gorm:"default:false" json:"useInventory"`
	Stock          *int                 `json:"stock"` // nil = sin control directo
	Available      bool                 `gorm:"default:true" json:"available"`
	OrganizationID uint                 `gorm:"not null;index" json:"organizationId"`
	Organization   Organization         `gorm:"foreignKey:OrganizationID" json:"-"`
	Ingredients    []MenuItemIngredient `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE" json:"ingredients"`
}

// MenuItemIngredient: consumo de insumo por unidad vendida.
type MenuItemIngredient struct {
	DTO
	MenuItemID      uint          `gorm:"not null;index" json:"menuItemId"`
	InventoryItemID uint          `gorm:"not null" json:"inventoryItemId"`
	Quantity        float64       `gorm:"not null" json:"quantity"`
	InventoryItem   InventoryItem `gorm:"foreignKey:InventoryItemID" json:"inventoryItem"`
}

type CreateMenuItemInput struct {
	Name         string                `json:"name" validate:"required"`
	Category     string                `json:"category"`
	Price        int64                 `json:"price" validate:"required,gt=0"`
	Direct       bool                  `json:"direct"`
	UseInventory bool                  `json:"useInventory"`
	Stock        *int                  `json:"stock" validate:"omitempty,gte=0"`
	Ingredients  []MenuIngredientInput `json:"ingredients" validate:"omitempty,dive"`
}

type MenuIngredientInput struct {
	InventoryItemID uint    `json:"inventoryItemId" validate:"required,gt=0"`
	Quantity        float64 `json:"quantity" validate:"required,gt=0"`
}

// MenuAvailability es la respuesta del cálculo de stock disponible.
type MenuAvailability struct {
	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name"`
	Available  int    `json:"available"`
	Unlimited  bool   `json:"unlimited"`
}
