package model

import (
	"github.com/shopspring/decimal"
)

// Tipos de movimiento de caja.
const (
	TipoIngreso = "ingreso"
	TipoEgreso  = "egreso"
)

// MovimientoCaja es una entrada firmada del libro de caja. Monto es siempre
// >= 0; el signo lo aporta Tipo (+ingreso, -egreso). VentaID referencia la
// venta que originó el movimiento, vacío para movimientos manuales.
type MovimientoCaja struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	Fecha       string          `gorm:"index" json:"fecha"`
	Tipo        string          `gorm:"index;not null" json:"tipo"`
	Monto       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"monto"`
	Descripcion string          `json:"descripcion"`
	VentaID     string          `gorm:"index" json:"ventaId"`
	MetodoPago  string          `json:"metodoPago"`
}

func (MovimientoCaja) TableName() string { return "caja" }

// Signo devuelve la contribución al balance: +monto para ingreso,
// -monto para egreso.
func (m MovimientoCaja) Signo() decimal.Decimal {
	if m.Tipo == TipoEgreso {
		return m.Monto.Neg()
	}
	return m.Monto
}
