package model

const (
	TableDisponible = "disponible"
	TableOcupada    = "ocupada"
)

// Table se relaciona con las órdenes por (organization_id, number), sin FK.
type Table struct {
	DTO
	Number         int          `gorm:"not null;uniqueIndex:idx_org_table_number" json:"number"`
	OrganizationID uint         `gorm:"not null;uniqueIndex:idx_org_table_number" json:"organizationId"`
	Capacity       int          `gorm:"default:4" json:"capacity"`
	Blockable      bool         `gorm:"default:true" json:"blockable"`
	Status         string       `gorm:"not null;default:'disponible'" json:"status"`
	Organization   Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

type CreateTableInput struct {
	Number    int   `json:"number" validate:"required,gt=0"`
	Capacity  int   `json:"capacity" validate:"omitempty,gt=0"`
	Blockable *bool `json:"blockable"`
}
