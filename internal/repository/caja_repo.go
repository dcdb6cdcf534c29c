package repository

import (
	"context"
	"time"

	"github.com/robertoloco/inventario-antorchadplata/internal/infra"
	"github.com/robertoloco/inventario-antorchadplata/internal/model"
	"github.com/robertoloco/inventario-antorchadplata/internal/store"
)

// CajaRepository da acceso al libro de caja. Los movimientos son inmutables
// en la práctica (el servicio nunca los edita), pero el contrato se mantiene
// uniforme con el resto de los repositorios.
type CajaRepository interface {
	GetAll(ctx context.Context) ([]model.MovimientoCaja, error)
	Add(ctx context.Context, m *model.MovimientoCaja) (string, error)
	Update(ctx context.Context, id string, campos store.Record) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.MovimientoCaja, error)
	GetByFecha(ctx context.Context, dia time.Time) ([]model.MovimientoCaja, error)
}

type cajaRepo struct {
	hibrido
}

func NewCajaRepository(local, remoto store.Store, cb *infra.CircuitBreaker) CajaRepository {
	return &cajaRepo{hibrido: newHibrido(store.Caja, local, remoto, cb)}
}

func (r *cajaRepo) GetAll(ctx context.Context) ([]model.MovimientoCaja, error) {
	recs, err := r.getAll(ctx)
	if err != nil {
		return nil, err
	}
	ordenarPorFechaDesc(recs, "fecha")
	return decodeMovimientos(recs)
}

func (r *cajaRepo) Add(ctx context.Context, m *model.MovimientoCaja) (string, error) {
	if m.Fecha == "" {
		m.Fecha = store.NowISO()
	}
	rec, err := store.Encode(m)
	if err != nil {
		return "", err
	}
	id, err := r.add(ctx, rec)
	if err != nil {
		return "", err
	}
	m.ID = id
	return id, nil
}

func (r *cajaRepo) Update(ctx context.Context, id string, campos store.Record) error {
	return r.update(ctx, id, sinCampo(campos, "fecha"))
}

func (r *cajaRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *cajaRepo) GetByID(ctx context.Context, id string) (*model.MovimientoCaja, error) {
	rec, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var m model.MovimientoCaja
	if err := store.Decode(rec, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *cajaRepo) GetByFecha(ctx context.Context, dia time.Time) ([]model.MovimientoCaja, error) {
	desde, hasta := store.DiaRange(dia)
	recs, err := r.getByFechaRange(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	ordenarPorFechaDesc(recs, "fecha")
	return decodeMovimientos(recs)
}

func decodeMovimientos(recs []store.Record) ([]model.MovimientoCaja, error) {
	movimientos := make([]model.MovimientoCaja, 0, len(recs))
	for _, rec := range recs {
		var m model.MovimientoCaja
		if err := store.Decode(rec, &m); err != nil {
			return nil, err
		}
		movimientos = append(movimientos, m)
	}
	return movimientos, nil
}
