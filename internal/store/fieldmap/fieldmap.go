// Package fieldmap traduce nombres de campo entre la convención en memoria
// (camelCase, la que usa el store local) y la convención del store remoto
// (snake_case). Son tablas explícitas por colección, no un algoritmo
// genérico de casing, para que agregar un campo nuevo no pueda introducir
// una colisión silenciosa. Solo se tocan las claves; los valores pasan
// intactos en ambas direcciones.
package fieldmap

import (
	"fmt"

	"github.com/robertoloco/inventario-antorchadplata/internal/store"
)

// aRemoto: tabla camelCase → snake_case por colección. Las claves que mapean
// a sí mismas se listan igual: la tabla es el inventario completo de campos
// conocidos y su bijectividad se verifica en init.
var aRemoto = map[string]map[string]string{
	store.Productos: {
		"id":        "id",
		"nombre":    "nombre",
		"categoria": "categoria",
		"precio":    "precio",
		"stock":     "stock",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	store.Ventas: {
		"id":          "id",
		"productoId":  "producto_id",
		"cantidad":    "cantidad",
		"precioVenta": "precio_venta",
		"tipo":        "tipo",
		"metodoPago":  "metodo_pago",
		"fecha":       "fecha",
		"updatedAt":   "updated_at",
	},
	store.Caja: {
		"id":          "id",
		"fecha":       "fecha",
		"tipo":        "tipo",
		"monto":       "monto",
		"descripcion": "descripcion",
		"ventaId":     "venta_id",
		"metodoPago":  "metodo_pago",
		"updatedAt":   "updated_at",
	},
}

// deRemoto es la inversa exacta de aRemoto, construida (y verificada) en init.
var deRemoto = map[string]map[string]string{}

func init() {
	for col, tabla := range aRemoto {
		inversa := make(map[string]string, len(tabla))
		for local, remoto := range tabla {
			if previo, ok := inversa[remoto]; ok {
				panic(fmt.Sprintf("fieldmap: colisión en %s: %q y %q mapean a %q", col, previo, local, remoto))
			}
			inversa[remoto] = local
		}
		deRemoto[col] = inversa
	}
}

// ToRemote devuelve una copia de rec con las claves en la convención remota.
// Las claves desconocidas pasan sin cambio (tolerancia a esquemas append-only).
func ToRemote(coleccion string, rec store.Record) store.Record {
	return traducir(aRemoto[coleccion], rec)
}

// FromRemote devuelve una copia de rec con las claves en la convención local.
func FromRemote(coleccion string, rec store.Record) store.Record {
	return traducir(deRemoto[coleccion], rec)
}

func traducir(tabla map[string]string, rec store.Record) store.Record {
	if rec == nil {
		return nil
	}
	out := make(store.Record, len(rec))
	for k, v := range rec {
		if destino, ok := tabla[k]; ok {
			out[destino] = v
			continue
		}
		out[k] = v
	}
	return out
}
