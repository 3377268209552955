package model

type Organization struct {
	DTO
	Name   string `gorm:"not null;unique" json:"name"`
	Active bool   `gorm:"default:true" json:"active"`
}

type User struct {
	DTO
	Username       string       `gorm:"not null;uniqueIndex" json:"username"`
	Password       string       `gorm:"not null" json:"-"`
	Name           string       `json:"name"`
	Role           string       `gorm:"not null" json:"role"` // admin, mesero, cocinero, cajero
	Active         bool         `gorm:"default:true" json:"active"`
	OrganizationID uint         `gorm:"not null;index" json:"organizationId"`
	Organization   Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
