package repository

import (
	"context"
	"time"

	"github.com/robertoloco/inventario-antorchadplata/internal/infra"
	"github.com/robertoloco/inventario-antorchadplata/internal/model"
	"github.com/robertoloco/inventario-antorchadplata/internal/store"
)

// VentaRepository da acceso al log de eventos de venta/producción.
// GetAll y GetByFecha devuelven los eventos más nuevos primero.
type VentaRepository interface {
	GetAll(ctx context.Context) ([]model.Venta, error)
	Add(ctx context.Context, v *model.Venta) (string, error)
	Update(ctx context.Context, id string, campos store.Record) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Venta, error)
	GetByFecha(ctx context.Context, dia time.Time) ([]model.Venta, error)
}

type ventaRepo struct {
	hibrido
}

func NewVentaRepository(local, remoto store.Store, cb *infra.CircuitBreaker) VentaRepository {
	return &ventaRepo{hibrido: newHibrido(store.Ventas, local, remoto, cb)}
}

func (r *ventaRepo) GetAll(ctx context.Context) ([]model.Venta, error) {
	recs, err := r.getAll(ctx)
	if err != nil {
		return nil, err
	}
	ordenarPorFechaDesc(recs, "fecha")
	return decodeVentas(recs)
}

// Add sella la fecha del evento en el momento de creación; es inmutable.
func (r *ventaRepo) Add(ctx context.Context, v *model.Venta) (string, error) {
	if v.Fecha == "" {
		v.Fecha = store.NowISO()
	}
	rec, err := store.Encode(v)
	if err != nil {
		return "", err
	}
	id, err := r.add(ctx, rec)
	if err != nil {
		return "", err
	}
	v.ID = id
	return id, nil
}

func (r *ventaRepo) Update(ctx context.Context, id string, campos store.Record) error {
	return r.update(ctx, id, sinCampo(campos, "fecha"))
}

func (r *ventaRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *ventaRepo) GetByID(ctx context.Context, id string) (*model.Venta, error) {
	rec, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var v model.Venta
	if err := store.Decode(rec, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetByFecha devuelve los eventos del día [00:00, 23:59.999] de dia.
func (r *ventaRepo) GetByFecha(ctx context.Context, dia time.Time) ([]model.Venta, error) {
	desde, hasta := store.DiaRange(dia)
	recs, err := r.getByFechaRange(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	ordenarPorFechaDesc(recs, "fecha")
	return decodeVentas(recs)
}

func decodeVentas(recs []store.Record) ([]model.Venta, error) {
	ventas := make([]model.Venta, 0, len(recs))
	for _, rec := range recs {
		var v model.Venta
		if err := store.Decode(rec, &v); err != nil {
			return nil, err
		}
		ventas = append(ventas, v)
	}
	return ventas, nil
}
