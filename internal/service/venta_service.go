package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/robertoloco/inventario-antorchadplata/internal/dto"
	"github.com/robertoloco/inventario-antorchadplata/internal/model"
	"github.com/robertoloco/inventario-antorchadplata/internal/repository"
	"github.com/robertoloco/inventario-antorchadplata/internal/store"
)

// MetodoPagoDefault se aplica cuando la venta no especifica método de pago.
const MetodoPagoDefault = "efectivo"

type VentaService interface {
	RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	RegistrarProduccion(ctx context.Context, req dto.RegistrarProduccionRequest) (*dto.VentaResponse, error)
	ListarVentas(ctx context.Context) ([]dto.VentaResponse, error)
	ListarPorFecha(ctx context.Context, dia time.Time) ([]dto.VentaResponse, error)
}

type ventaService struct {
	ventas    repository.VentaRepository
	productos repository.ProductoRepository
	caja      repository.CajaRepository
}

func NewVentaService(
	ventas repository.VentaRepository,
	productos repository.ProductoRepository,
	caja repository.CajaRepository,
) VentaService {
	return &ventaService{ventas: ventas, productos: productos, caja: caja}
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// Transacción compuesta en orden fijo y sin rollback compensatorio:
//   1. buscar producto            → ErrProductoNoEncontrado
//   2. validar stock              → ErrStockInsuficiente
//   3. crear evento "venta"
//   4. descontar stock
//   5. registrar ingreso en caja con back-reference al evento
//
// Un fallo en 4 o 5 deja el evento del paso 3 persistido sin su ajuste de
// stock o asiento de caja. El llamador debe re-consultar el estado en vez de
// asumir atomicidad.
func (s *ventaService) RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	metodoPago := req.MetodoPago
	if metodoPago == "" {
		metodoPago = MetodoPagoDefault
	}

	// 1. producto
	producto, err := s.productos.GetByID(ctx, req.ProductoID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}

	// 2. stock
	if producto.Stock < req.Cantidad {
		return nil, ErrStockInsuficiente
	}

	// 3. evento de venta
	venta := &model.Venta{
		ProductoID:  req.ProductoID,
		Cantidad:    req.Cantidad,
		PrecioVenta: req.PrecioVenta,
		Tipo:        model.TipoVenta,
		MetodoPago:  metodoPago,
	}
	ventaID, err := s.ventas.Add(ctx, venta)
	if err != nil {
		return nil, err
	}

	// 4. stock
	if err := s.productos.AjustarStock(ctx, req.ProductoID, -req.Cantidad); err != nil {
		return nil, fmt.Errorf("venta %s registrada pero el ajuste de stock falló: %w", ventaID, err)
	}

	// 5. caja
	monto := req.PrecioVenta.Mul(decimal.NewFromInt(int64(req.Cantidad)))
	movimiento := &model.MovimientoCaja{
		Tipo:        model.TipoIngreso,
		Monto:       monto,
		Descripcion: fmt.Sprintf("Venta: %s x%d", producto.Nombre, req.Cantidad),
		VentaID:     ventaID,
		MetodoPago:  metodoPago,
	}
	if _, err := s.caja.Add(ctx, movimiento); err != nil {
		return nil, fmt.Errorf("venta %s registrada pero el asiento de caja falló: %w", ventaID, err)
	}

	resp := ventaToResponse(venta)
	resp.Producto = producto.Nombre
	return resp, nil
}

// ── RegistrarProduccion ───────────────────────────────────────────────────────
// El stock sube antes de loguear el evento; un fallo después del paso 1 deja
// el stock incrementado sin entrada en el log. Sin movimiento de caja.
func (s *ventaService) RegistrarProduccion(ctx context.Context, req dto.RegistrarProduccionRequest) (*dto.VentaResponse, error) {
	// 1. stock
	if err := s.productos.AjustarStock(ctx, req.ProductoID, req.Cantidad); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}

	// 2. evento de producción, precio fijo en 0
	evento := &model.Venta{
		ProductoID:  req.ProductoID,
		Cantidad:    req.Cantidad,
		PrecioVenta: decimal.Zero,
		Tipo:        model.TipoProduccion,
	}
	if _, err := s.ventas.Add(ctx, evento); err != nil {
		return nil, fmt.Errorf("stock ajustado pero el evento de producción no se registró: %w", err)
	}

	resp := ventaToResponse(evento)
	if producto, err := s.productos.GetByID(ctx, req.ProductoID); err == nil {
		resp.Producto = producto.Nombre
	}
	return resp, nil
}

func (s *ventaService) ListarVentas(ctx context.Context) ([]dto.VentaResponse, error) {
	ventas, err := s.ventas.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.conNombres(ctx, ventas), nil
}

func (s *ventaService) ListarPorFecha(ctx context.Context, dia time.Time) ([]dto.VentaResponse, error) {
	ventas, err := s.ventas.GetByFecha(ctx, dia)
	if err != nil {
		return nil, err
	}
	return s.conNombres(ctx, ventas), nil
}

// conNombres resuelve los nombres de producto para el listado. Una
// referencia colgante deja el nombre vacío, nunca corta la respuesta.
func (s *ventaService) conNombres(ctx context.Context, ventas []model.Venta) []dto.VentaResponse {
	nombres := map[string]string{}
	out := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		resp := ventaToResponse(&ventas[i])
		nombre, visto := nombres[ventas[i].ProductoID]
		if !visto {
			if p, err := s.productos.GetByID(ctx, ventas[i].ProductoID); err == nil {
				nombre = p.Nombre
			}
			nombres[ventas[i].ProductoID] = nombre
		}
		resp.Producto = nombre
		out = append(out, *resp)
	}
	return out
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	return &dto.VentaResponse{
		ID:          v.ID,
		ProductoID:  v.ProductoID,
		Cantidad:    v.Cantidad,
		PrecioVenta: v.PrecioVenta,
		Tipo:        v.Tipo,
		MetodoPago:  v.MetodoPago,
		Fecha:       v.Fecha,
	}
}
