// Package repository contiene los repositorios híbridos: uno por colección,
// todos sobre el mismo núcleo. Cuando el remoto está configurado, cada
// operación lo intenta primero y degrada al store local ante cualquier fallo;
// las escrituras remotas exitosas se espejan siempre en el store local para
// que las lecturas offline sigan viendo los datos.
//
// Política de errores: ErrBackendUnavailable (y el breaker abierto) se
// capturan acá y nunca suben; solo los errores del store local (por ejemplo
// ErrNotFound en un update) se propagan al llamador.
package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robertoloco/inventario-antorchadplata/internal/infra"
	"github.com/robertoloco/inventario-antorchadplata/internal/store"
)

// hibrido es el núcleo compartido por los tres repositorios.
type hibrido struct {
	coleccion string
	local     store.Store
	remoto    store.Store // nil = modo solo-local
	cb        *infra.CircuitBreaker
}

func newHibrido(coleccion string, local, remoto store.Store, cb *infra.CircuitBreaker) hibrido {
	if remoto != nil && cb == nil {
		cb = infra.NewCircuitBreaker(infra.DefaultCBConfig())
	}
	return hibrido{coleccion: coleccion, local: local, remoto: remoto, cb: cb}
}

// ejecutarRemoto corre fn a través del breaker y clasifica el resultado.
// ErrNotFound del remoto cuenta como éxito de transporte (el dato no está,
// pero el servicio respondió); cualquier otro error abre camino al fallback.
func (h *hibrido) ejecutarRemoto(op string, fn func() error) (ok bool) {
	if h.remoto == nil {
		return false
	}
	var ausente bool
	err := h.cb.Execute(func() error {
		if e := fn(); e != nil {
			if errors.Is(e, store.ErrNotFound) {
				ausente = true
				return nil
			}
			return e
		}
		return nil
	})
	if err != nil {
		log.Warn().
			Str("coleccion", h.coleccion).
			Str("op", op).
			Err(err).
			Msg("store remoto falló, usando store local")
		return false
	}
	return !ausente
}

// getAll devuelve la vista remota cuando el remoto responde (autoritativa,
// sin mezclar con lo local) y la local en cualquier otro caso.
func (h *hibrido) getAll(ctx context.Context) ([]store.Record, error) {
	var recs []store.Record
	if h.ejecutarRemoto("getAll", func() error {
		var err error
		recs, err = h.remoto.GetAll(ctx, h.coleccion)
		return err
	}) {
		return recs, nil
	}
	return h.local.GetAll(ctx, h.coleccion)
}

// add intenta la escritura remota primero; si el remoto asigna la clave, el
// mismo registro se espeja en el store local con esa clave. El fallo del
// espejo no revierte ni oculta el éxito remoto: se registra y se acepta la
// inconsistencia eventual (el worker de re-espejado la achica después).
func (h *hibrido) add(ctx context.Context, rec store.Record) (string, error) {
	var id string
	if h.ejecutarRemoto("add", func() error {
		var err error
		id, err = h.remoto.Add(ctx, h.coleccion, rec)
		return err
	}) {
		espejo := make(store.Record, len(rec)+1)
		for k, v := range rec {
			espejo[k] = v
		}
		espejo["id"] = id
		if _, err := h.local.Add(ctx, h.coleccion, espejo); err != nil {
			log.Warn().
				Str("coleccion", h.coleccion).
				Str("id", id).
				Err(err).
				Msg("escritura remota exitosa pero el espejo local falló")
		}
		return id, nil
	}
	return h.local.Add(ctx, h.coleccion, rec)
}

// update replica el patrón de doble escritura: remoto cuando se puede,
// local siempre. El veredicto es el del store local.
func (h *hibrido) update(ctx context.Context, id string, campos store.Record) error {
	h.ejecutarRemoto("update", func() error {
		return h.remoto.Update(ctx, h.coleccion, id, campos)
	})
	return h.local.Update(ctx, h.coleccion, id, campos)
}

// delete borra en el remoto cuando está alcanzable y en el local siempre.
func (h *hibrido) delete(ctx context.Context, id string) error {
	h.ejecutarRemoto("delete", func() error {
		return h.remoto.Delete(ctx, h.coleccion, id)
	})
	return h.local.Delete(ctx, h.coleccion, id)
}

// getByID busca primero en el remoto y cae al local ante fallo o ausencia.
func (h *hibrido) getByID(ctx context.Context, id string) (store.Record, error) {
	var rec store.Record
	if h.ejecutarRemoto("getById", func() error {
		var err error
		rec, err = h.remoto.GetByID(ctx, h.coleccion, id)
		return err
	}) {
		return rec, nil
	}
	return h.local.GetByID(ctx, h.coleccion, id)
}

// getByFechaRange consulta el rango [desde, hasta] inclusivo, remoto primero.
func (h *hibrido) getByFechaRange(ctx context.Context, desde, hasta time.Time) ([]store.Record, error) {
	var recs []store.Record
	if h.ejecutarRemoto("getByFechaRange", func() error {
		var err error
		recs, err = h.remoto.GetByFechaRange(ctx, h.coleccion, desde, hasta)
		return err
	}) {
		return recs, nil
	}
	return h.local.GetByFechaRange(ctx, h.coleccion, desde, hasta)
}

// sinCampo devuelve una copia de campos sin la clave indicada. El Record del
// llamador nunca se muta.
func sinCampo(campos store.Record, clave string) store.Record {
	out := make(store.Record, len(campos))
	for k, v := range campos {
		if k == clave {
			continue
		}
		out[k] = v
	}
	return out
}

// ordenarPorFechaDesc ordena los records por su campo de orden, más nuevos
// primero (el orden que muestran los listados de ventas y caja).
func ordenarPorFechaDesc(recs []store.Record, campo string) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, _ := recs[i][campo].(string)
		b, _ := recs[j][campo].(string)
		return a > b
	})
}
