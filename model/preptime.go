package model

// PrepTimeStat: agregado diario de tiempos de preparación por producto.
// Clave (menu_item_id, date); recalcular el mismo día sobrescribe.
type PrepTimeStat struct {
	DTO
	MenuItemID     uint     `gorm:"not null;uniqueIndex:idx_preptime_item_date" json:"menuItemId"`
	Date           string   `gorm:"not null;size:10;uniqueIndex:idx_preptime_item_date" json:"date"` // YYYY-MM-DD hora Colombia
	OrganizationID uint     `gorm:"not null;index" json:"organizationId"`
	Count          int      `gorm:"not null" json:"count"`
	AvgMinutes     float64  `json:"avgMinutes"`
	MinMinutes     float64  `json:"minMinutes"`
	MaxMinutes     float64  `json:"maxMinutes"`
	MenuItem       MenuItem `gorm:"foreignKey:MenuItemID" json:"-"`
}
