package model

import (
	"github.com/shopspring/decimal"
)

// Producto es una pieza del catálogo. El ID es opaco: string numérico cuando
// lo asigna el store local (autoincremental), UUID cuando lo asigna el remoto.
// CreatedAt se fija una sola vez al crear y nunca se muta.
type Producto struct {
	ID        string          `gorm:"primaryKey" json:"id"`
	Nombre    string          `gorm:"index;not null" json:"nombre"`
	Categoria string          `json:"categoria"`
	Precio    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"precio"`
	Stock     int             `gorm:"not null;default:0" json:"stock"`
	CreatedAt string          `gorm:"index" json:"createdAt"`
}

func (Producto) TableName() string { return "productos" }
