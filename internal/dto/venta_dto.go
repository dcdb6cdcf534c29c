package dto

import (
	"github.com/shopspring/decimal"
)

type RegistrarVentaRequest struct {
	ProductoID  string          `json:"productoId" validate:"required"`
	Cantidad    int             `json:"cantidad" validate:"required,gt=0"`
	PrecioVenta decimal.Decimal `json:"precioVenta" validate:"min=0"`
	// MetodoPago por omisión es "efectivo" (lo aplica el servicio).
	MetodoPago string `json:"metodoPago"`
}

type RegistrarProduccionRequest struct {
	ProductoID string `json:"productoId" validate:"required"`
	Cantidad   int    `json:"cantidad" validate:"required,gt=0"`
}

// VentaResponse es el evento persistido, enriquecido con el nombre del
// producto cuando se pudo resolver (las referencias colgantes quedan vacías).
type VentaResponse struct {
	ID          string          `json:"id"`
	ProductoID  string          `json:"productoId"`
	Producto    string          `json:"producto,omitempty"`
	Cantidad    int             `json:"cantidad"`
	PrecioVenta decimal.Decimal `json:"precioVenta"`
	Tipo        string          `json:"tipo"`
	MetodoPago  string          `json:"metodoPago,omitempty"`
	Fecha       string          `json:"fecha"`
}
