package fieldmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertoloco/inventario-antorchadplata/internal/store"
)

func TestTablasSonBiyectivas(t *testing.T) {
	for col, tabla := range aRemoto {
		vistos := make(map[string]string)
		for local, remoto := range tabla {
			previo, repetido := vistos[remoto]
			require.Falsef(t, repetido, "colección %s: %q y %q colisionan en %q", col, previo, local, remoto)
			vistos[remoto] = local
		}
		require.Len(t, deRemoto[col], len(tabla))
	}
}

func TestRoundTripSinPerdida(t *testing.T) {
	rec := store.Record{
		"id":          "abc-123",
		"productoId":  "7",
		"cantidad":    2,
		"precioVenta": "12.50",
		"tipo":        "venta",
		"metodoPago":  "efectivo",
		"fecha":       "2025-08-31T12:00:00.000Z",
	}

	remoto := ToRemote(store.Ventas, rec)
	assert.Equal(t, "7", remoto["producto_id"])
	assert.Equal(t, "12.50", remoto["precio_venta"])
	assert.Equal(t, "efectivo", remoto["metodo_pago"])
	assert.NotContains(t, remoto, "productoId")

	vuelta := FromRemote(store.Ventas, remoto)
	assert.Equal(t, rec, vuelta)
}

func TestSoloTraduceClaves(t *testing.T) {
	rec := store.Record{"monto": "99.90", "ventaId": "3"}
	remoto := ToRemote(store.Caja, rec)
	// los valores pasan intactos
	assert.Equal(t, "99.90", remoto["monto"])
	assert.Equal(t, "3", remoto["venta_id"])
}

func TestClavesDesconocidasPasanSinCambio(t *testing.T) {
	// tolerancia a esquemas append-only: un campo agregado después no se pierde
	rec := store.Record{"nombre": "Anillo", "campoNuevo": true}
	remoto := ToRemote(store.Productos, rec)
	assert.Equal(t, true, remoto["campoNuevo"])
	vuelta := FromRemote(store.Productos, remoto)
	assert.Equal(t, rec, vuelta)
}
