package localstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertoloco/inventario-antorchadplata/internal/infra"
	"github.com/robertoloco/inventario-antorchadplata/internal/model"
	"github.com/robertoloco/inventario-antorchadplata/internal/store"
)

func nuevoStore(t *testing.T) *LocalStore {
	t.Helper()
	db, err := infra.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return New(db)
}

func TestAddAsignaIDsSecuencialesPorColeccion(t *testing.T) {
	ctx := context.Background()
	s := nuevoStore(t)

	id1, err := s.Add(ctx, store.Productos, store.Record{"nombre": "Anillo", "precio": "10", "stock": 5})
	require.NoError(t, err)
	id2, err := s.Add(ctx, store.Productos, store.Record{"nombre": "Dije", "precio": "4", "stock": 2})
	require.NoError(t, err)
	assert.Equal(t, "1", id1)
	assert.Equal(t, "2", id2)

	// cada colección lleva su propio contador
	idVenta, err := s.Add(ctx, store.Ventas, store.Record{
		"productoId": id1, "cantidad": 1, "precioVenta": "10", "tipo": "venta", "fecha": "2025-08-30T10:00:00.000Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", idVenta)
}

func TestAddConservaIDDeEspejo(t *testing.T) {
	ctx := context.Background()
	s := nuevoStore(t)

	// un espejo de escritura remota trae su clave UUID y se guarda tal cual
	id, err := s.Add(ctx, store.Productos, store.Record{
		"id": "b1e6f2a0-0000-4000-8000-000000000001", "nombre": "Pulsera", "precio": "8", "stock": 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "b1e6f2a0-0000-4000-8000-000000000001", id)

	rec, err := s.GetByID(ctx, store.Productos, id)
	require.NoError(t, err)
	assert.Equal(t, "Pulsera", rec["nombre"])

	// el contador secuencial no se ve afectado por los espejos
	siguiente, err := s.Add(ctx, store.Productos, store.Record{"nombre": "Anillo", "precio": "10", "stock": 5})
	require.NoError(t, err)
	assert.Equal(t, "1", siguiente)
}

func TestGetByIDInexistente(t *testing.T) {
	s := nuevoStore(t)
	_, err := s.GetByID(context.Background(), store.Productos, "999")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateMezclaCamposYTraduceClaves(t *testing.T) {
	ctx := context.Background()
	s := nuevoStore(t)

	id, err := s.Add(ctx, store.Ventas, store.Record{
		"productoId": "1", "cantidad": 2, "precioVenta": "12.50", "tipo": "venta",
		"metodoPago": "efectivo", "fecha": "2025-08-30T10:00:00.000Z",
	})
	require.NoError(t, err)

	// las claves camelCase del Record llegan a las columnas snake_case
	require.NoError(t, s.Update(ctx, store.Ventas, id, store.Record{"metodoPago": "transferencia"}))

	rec, err := s.GetByID(ctx, store.Ventas, id)
	require.NoError(t, err)
	assert.Equal(t, "transferencia", rec["metodoPago"])
	// el resto del registro queda intacto
	assert.Equal(t, "2025-08-30T10:00:00.000Z", rec["fecha"])
	var v model.Venta
	require.NoError(t, store.Decode(rec, &v))
	assert.True(t, v.PrecioVenta.Equal(decimalDe(t, "12.50")))
}

func TestUpdateInexistenteDevuelveNotFound(t *testing.T) {
	s := nuevoStore(t)
	err := s.Update(context.Background(), store.Productos, "999", store.Record{"nombre": "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteEsIdempotente(t *testing.T) {
	ctx := context.Background()
	s := nuevoStore(t)

	id, err := s.Add(ctx, store.Productos, store.Record{"nombre": "Anillo", "precio": "10", "stock": 5})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, store.Productos, id))
	require.NoError(t, s.Delete(ctx, store.Productos, id))

	_, err = s.GetByID(ctx, store.Productos, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetByFechaRangeIncluyeLosBordes(t *testing.T) {
	ctx := context.Background()
	s := nuevoStore(t)

	fechas := []string{
		"2025-08-29T23:59:59.999Z",
		"2025-08-30T00:00:00.000Z",
		"2025-08-30T12:00:00.000Z",
		"2025-08-30T23:59:59.999Z",
		"2025-08-31T00:00:00.000Z",
	}
	for _, fecha := range fechas {
		_, err := s.Add(ctx, store.Caja, store.Record{
			"tipo": "ingreso", "monto": "10", "fecha": fecha,
		})
		require.NoError(t, err)
	}

	dia, err := time.Parse(time.RFC3339, "2025-08-30T15:00:00Z")
	require.NoError(t, err)
	desde, hasta := store.DiaRange(dia)

	recs, err := s.GetByFechaRange(ctx, store.Caja, desde, hasta)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	// orden ascendente por fecha
	assert.Equal(t, "2025-08-30T00:00:00.000Z", recs[0]["fecha"])
	assert.Equal(t, "2025-08-30T23:59:59.999Z", recs[2]["fecha"])
}

func decimalDe(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestRoundTripDeModelo(t *testing.T) {
	ctx := context.Background()
	s := nuevoStore(t)

	original := model.MovimientoCaja{
		Fecha:       "2025-08-30T10:00:00.000Z",
		Tipo:        model.TipoIngreso,
		Monto:       decimalDe(t, "25.00"),
		Descripcion: "Venta: Anillo x2",
		VentaID:     "7",
		MetodoPago:  "efectivo",
	}
	rec, err := store.Encode(original)
	require.NoError(t, err)
	id, err := s.Add(ctx, store.Caja, rec)
	require.NoError(t, err)

	leido, err := s.GetByID(ctx, store.Caja, id)
	require.NoError(t, err)
	var m model.MovimientoCaja
	require.NoError(t, store.Decode(leido, &m))

	assert.Equal(t, id, m.ID)
	assert.True(t, m.Monto.Equal(original.Monto), "monto = %s", m.Monto)
	assert.Equal(t, original.Descripcion, m.Descripcion)
	assert.Equal(t, original.VentaID, m.VentaID)
	assert.Equal(t, original.Fecha, m.Fecha)
}
