package dto

import (
	"github.com/shopspring/decimal"

	"github.com/robertoloco/inventario-antorchadplata/internal/store"
)

type CrearProductoRequest struct {
	Nombre    string          `json:"nombre" validate:"required"`
	Categoria string          `json:"categoria"`
	Precio    decimal.Decimal `json:"precio" validate:"min=0"`
	Stock     int             `json:"stock" validate:"min=0"`
}

// ActualizarProductoRequest es un parche: solo los campos presentes en el
// JSON se aplican. createdAt no es editable.
type ActualizarProductoRequest struct {
	Nombre    *string          `json:"nombre,omitempty"`
	Categoria *string          `json:"categoria,omitempty"`
	Precio    *decimal.Decimal `json:"precio,omitempty" validate:"omitempty,min=0"`
	Stock     *int             `json:"stock,omitempty"`
}

// Campos traduce el parche a un Record con solo lo provisto.
func (r ActualizarProductoRequest) Campos() store.Record {
	campos := store.Record{}
	if r.Nombre != nil {
		campos["nombre"] = *r.Nombre
	}
	if r.Categoria != nil {
		campos["categoria"] = *r.Categoria
	}
	if r.Precio != nil {
		campos["precio"] = *r.Precio
	}
	if r.Stock != nil {
		campos["stock"] = *r.Stock
	}
	return campos
}

type AjustarStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}
