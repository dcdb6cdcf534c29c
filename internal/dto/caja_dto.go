package dto

import (
	"github.com/shopspring/decimal"
)

type MovimientoManualRequest struct {
	Tipo        string          `json:"tipo" validate:"required,oneof=ingreso egreso"`
	Monto       decimal.Decimal `json:"monto" validate:"min=0"`
	Descripcion string          `json:"descripcion"`
	MetodoPago  string          `json:"metodoPago"`
}

type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
	// Fecha presente solo cuando el balance está acotado a un día.
	Fecha string `json:"fecha,omitempty"`
}
