// Package store define el contrato común que comparten el store local
// (SQLite) y el adaptador remoto (Redis). El repositorio híbrido trata a
// ambos de forma polimórfica a través de la interfaz Store.
package store

import (
	"context"
	"time"
)

// Nombres de colección; coinciden con el esquema del dominio.
const (
	Productos = "productos"
	Ventas    = "ventas"
	Caja      = "caja"
)

// Record es un registro en la convención de nombres en memoria (camelCase).
// La traducción a la convención del store remoto (snake_case) ocurre en el
// adaptador remoto, nunca antes.
type Record = map[string]any

// Store es el contrato uniforme de persistencia por colección.
//
// Semántica acordada entre implementaciones:
//   - Add asigna un ID nuevo solo si el registro no trae uno; devuelve el ID usado.
//   - Update mezcla únicamente los campos provistos; ErrNotFound si el id no existe.
//   - Delete es idempotente: borrar un id inexistente no es error.
//   - GetByID devuelve ErrNotFound en ausencia, nunca pánico.
//   - GetByFechaRange devuelve los registros cuyo campo de orden cae en
//     [desde, hasta] inclusive.
type Store interface {
	GetAll(ctx context.Context, coleccion string) ([]Record, error)
	Add(ctx context.Context, coleccion string, rec Record) (string, error)
	Update(ctx context.Context, coleccion, id string, campos Record) error
	Delete(ctx context.Context, coleccion, id string) error
	GetByID(ctx context.Context, coleccion, id string) (Record, error)
	GetByFechaRange(ctx context.Context, coleccion string, desde, hasta time.Time) ([]Record, error)
}

// CampoOrden devuelve el campo de orden de una colección (para rangos por
// fecha y el orden descendente de GetAll en ventas/caja).
func CampoOrden(coleccion string) string {
	if coleccion == Productos {
		return "createdAt"
	}
	return "fecha"
}
