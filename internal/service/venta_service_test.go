package service

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertoloco/inventario-antorchadplata/internal/dto"
	"github.com/robertoloco/inventario-antorchadplata/internal/model"
	"github.com/robertoloco/inventario-antorchadplata/internal/repository"
	"github.com/robertoloco/inventario-antorchadplata/internal/store"
)

// memoria es un store.Store mínimo en memoria para los tests de servicio:
// mismo contrato que el store local (ids secuenciales, ErrNotFound, delete
// idempotente), sin SQLite de por medio.
type memoria struct {
	mu    sync.Mutex
	datos map[string]map[string]store.Record
	seq   int64
}

func newMemoria() *memoria {
	return &memoria{datos: map[string]map[string]store.Record{}}
}

func (s *memoria) coleccion(nombre string) map[string]store.Record {
	if s.datos[nombre] == nil {
		s.datos[nombre] = map[string]store.Record{}
	}
	return s.datos[nombre]
}

func copiar(rec store.Record) store.Record {
	out := make(store.Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

func (s *memoria) GetAll(_ context.Context, col string) ([]store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var recs []store.Record
	for _, rec := range s.coleccion(col) {
		recs = append(recs, copiar(rec))
	}
	return recs, nil
}

func (s *memoria) Add(_ context.Context, col string, rec store.Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := rec["id"].(string)
	if id == "" {
		s.seq++
		id = strconv.FormatInt(s.seq, 10)
	}
	copia := copiar(rec)
	copia["id"] = id
	s.coleccion(col)[id] = copia
	return id, nil
}

func (s *memoria) Update(_ context.Context, col, id string, campos store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.coleccion(col)[id]
	if !ok {
		return store.ErrNotFound
	}
	for k, v := range campos {
		if k != "id" {
			rec[k] = v
		}
	}
	return nil
}

func (s *memoria) Delete(_ context.Context, col, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.coleccion(col), id)
	return nil
}

func (s *memoria) GetByID(_ context.Context, col, id string) (store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.coleccion(col)[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copiar(rec), nil
}

func (s *memoria) GetByFechaRange(_ context.Context, col string, desde, hasta time.Time) ([]store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	campo := store.CampoOrden(col)
	min, max := store.FormatFecha(desde), store.FormatFecha(hasta)
	var recs []store.Record
	for _, rec := range s.coleccion(col) {
		fecha, _ := rec[campo].(string)
		if fecha >= min && fecha <= max {
			recs = append(recs, copiar(rec))
		}
	}
	return recs, nil
}

// entorno arma el grafo completo de servicios sobre un único store en memoria.
type entorno struct {
	productos repository.ProductoRepository
	ventas    repository.VentaRepository
	caja      repository.CajaRepository
	ventaSvc  VentaService
	cajaSvc   CajaService
}

func nuevoEntorno() *entorno {
	mem := newMemoria()
	productos := repository.NewProductoRepository(mem, nil, nil)
	ventas := repository.NewVentaRepository(mem, nil, nil)
	caja := repository.NewCajaRepository(mem, nil, nil)
	return &entorno{
		productos: productos,
		ventas:    ventas,
		caja:      caja,
		ventaSvc:  NewVentaService(ventas, productos, caja),
		cajaSvc:   NewCajaService(caja),
	}
}

func (e *entorno) sembrarProducto(t *testing.T, nombre string, precio string, stock int) string {
	t.Helper()
	id, err := e.productos.Add(context.Background(), &model.Producto{
		Nombre: nombre,
		Precio: decimal.RequireFromString(precio),
		Stock:  stock,
	})
	require.NoError(t, err)
	return id
}

// ── RegistrarVenta ───────────────────────────────────────────────────────────

func TestRegistrarVentaDescuentaStockYAsientaCaja(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno()
	id := e.sembrarProducto(t, "Anillo", "10.00", 5)

	resp, err := e.ventaSvc.RegistrarVenta(ctx, dto.RegistrarVentaRequest{
		ProductoID:  id,
		Cantidad:    2,
		PrecioVenta: decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Anillo", resp.Producto)
	assert.Equal(t, model.TipoVenta, resp.Tipo)
	assert.Equal(t, MetodoPagoDefault, resp.MetodoPago)
	assert.NotEmpty(t, resp.Fecha)

	// stock descontado
	p, err := e.productos.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)

	// un único evento de venta con los valores de la operación
	ventas, err := e.ventas.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, ventas, 1)
	assert.Equal(t, 2, ventas[0].Cantidad)
	assert.True(t, ventas[0].PrecioVenta.Equal(decimal.RequireFromString("12.50")))

	// un único ingreso en caja, monto = precio × cantidad, con back-reference
	movimientos, err := e.caja.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, movimientos, 1)
	m := movimientos[0]
	assert.Equal(t, model.TipoIngreso, m.Tipo)
	assert.True(t, m.Monto.Equal(decimal.RequireFromString("25.00")))
	assert.Equal(t, "Venta: Anillo x2", m.Descripcion)
	assert.Equal(t, ventas[0].ID, m.VentaID)

	balance, err := e.cajaSvc.GetBalance(ctx)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("25.00")))
}

func TestRegistrarVentaRespetaMetodoPago(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno()
	id := e.sembrarProducto(t, "Dije", "4.00", 3)

	resp, err := e.ventaSvc.RegistrarVenta(ctx, dto.RegistrarVentaRequest{
		ProductoID:  id,
		Cantidad:    1,
		PrecioVenta: decimal.RequireFromString("4.00"),
		MetodoPago:  "transferencia",
	})
	require.NoError(t, err)
	assert.Equal(t, "transferencia", resp.MetodoPago)

	movimientos, err := e.caja.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, movimientos, 1)
	assert.Equal(t, "transferencia", movimientos[0].MetodoPago)
}

func TestRegistrarVentaStockInsuficienteNoEscribeNada(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno()
	id := e.sembrarProducto(t, "Anillo", "10.00", 1)

	_, err := e.ventaSvc.RegistrarVenta(ctx, dto.RegistrarVentaRequest{
		ProductoID:  id,
		Cantidad:    2,
		PrecioVenta: decimal.RequireFromString("10.00"),
	})
	assert.ErrorIs(t, err, ErrStockInsuficiente)

	p, err := e.productos.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock)

	ventas, err := e.ventas.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, ventas)

	movimientos, err := e.caja.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, movimientos)
}

func TestRegistrarVentaProductoInexistenteNoEscribeNada(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno()

	_, err := e.ventaSvc.RegistrarVenta(ctx, dto.RegistrarVentaRequest{
		ProductoID:  "999",
		Cantidad:    1,
		PrecioVenta: decimal.RequireFromString("10.00"),
	})
	assert.ErrorIs(t, err, ErrProductoNoEncontrado)

	ventas, err := e.ventas.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, ventas)

	movimientos, err := e.caja.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, movimientos)
}

// ── RegistrarProduccion ──────────────────────────────────────────────────────

func TestRegistrarProduccionSumaStockSinMoverCaja(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno()
	id := e.sembrarProducto(t, "Anillo", "10.00", 3)

	resp, err := e.ventaSvc.RegistrarProduccion(ctx, dto.RegistrarProduccionRequest{
		ProductoID: id,
		Cantidad:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, model.TipoProduccion, resp.Tipo)
	assert.True(t, resp.PrecioVenta.IsZero())

	p, err := e.productos.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 13, p.Stock)

	// el evento queda en el mismo log que las ventas, con precio 0
	ventas, err := e.ventas.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, ventas, 1)
	assert.Equal(t, model.TipoProduccion, ventas[0].Tipo)
	assert.True(t, ventas[0].PrecioVenta.IsZero())

	// la producción nunca toca la caja
	movimientos, err := e.caja.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, movimientos)
}

func TestRegistrarProduccionProductoInexistente(t *testing.T) {
	e := nuevoEntorno()
	_, err := e.ventaSvc.RegistrarProduccion(context.Background(), dto.RegistrarProduccionRequest{
		ProductoID: "999",
		Cantidad:   5,
	})
	assert.ErrorIs(t, err, ErrProductoNoEncontrado)
}

// ── Listados ─────────────────────────────────────────────────────────────────

func TestListarVentasResuelveNombresYTolerasReferenciasColgantes(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno()
	id := e.sembrarProducto(t, "Anillo", "10.00", 5)

	_, err := e.ventaSvc.RegistrarVenta(ctx, dto.RegistrarVentaRequest{
		ProductoID:  id,
		Cantidad:    1,
		PrecioVenta: decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	// venta huérfana: el producto fue borrado después
	_, err = e.ventas.Add(ctx, &model.Venta{
		ProductoID:  "borrado",
		Cantidad:    1,
		PrecioVenta: decimal.RequireFromString("1.00"),
		Tipo:        model.TipoVenta,
	})
	require.NoError(t, err)

	listado, err := e.ventaSvc.ListarVentas(ctx)
	require.NoError(t, err)
	require.Len(t, listado, 2)

	nombres := map[string]string{}
	for _, v := range listado {
		nombres[v.ProductoID] = v.Producto
	}
	assert.Equal(t, "Anillo", nombres[id])
	assert.Equal(t, "", nombres["borrado"])
}

func TestListarPorFechaFiltraAlDia(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno()

	for _, fecha := range []string{
		"2025-08-30T09:00:00.000Z",
		"2025-08-30T21:30:00.000Z",
		"2025-08-31T10:00:00.000Z",
	} {
		_, err := e.ventas.Add(ctx, &model.Venta{
			ProductoID:  "1",
			Cantidad:    1,
			PrecioVenta: decimal.RequireFromString("5.00"),
			Tipo:        model.TipoVenta,
			Fecha:       fecha,
		})
		require.NoError(t, err)
	}

	dia, err := time.Parse(time.RFC3339, "2025-08-30T00:00:00Z")
	require.NoError(t, err)
	listado, err := e.ventaSvc.ListarPorFecha(ctx, dia)
	require.NoError(t, err)
	assert.Len(t, listado, 2)
}
