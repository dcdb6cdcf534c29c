package model

import (
	"github.com/shopspring/decimal"
)

// Tipos de evento sobre el log de ventas/producción.
const (
	TipoVenta      = "venta"      // decrementa stock, genera ingreso en caja
	TipoProduccion = "produccion" // incrementa stock, sin movimiento de caja
)

// Venta es un evento del log de ventas/producción. ProductoID es una
// referencia no forzada: una referencia colgante se resuelve como
// "no encontrado" al leer, nunca como error del store.
// Fecha es ISO-8601, inmutable desde la creación.
type Venta struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	ProductoID  string          `gorm:"index" json:"productoId"`
	Cantidad    int             `gorm:"not null" json:"cantidad"`
	PrecioVenta decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"precioVenta"`
	Tipo        string          `gorm:"index;not null" json:"tipo"`
	MetodoPago  string          `json:"metodoPago"`
	Fecha       string          `gorm:"index" json:"fecha"`
}

func (Venta) TableName() string { return "ventas" }
