// Package remotestore implementa store.Store contra la base remota en
// tiempo real (Redis). Cada colección vive bajo una ruta propia: un hash
// clave→documento JSON en la convención snake_case del remoto, más un sorted
// set por el campo de orden que soporta los rangos por fecha con límites
// inclusivos. Todo fallo de transporte se envuelve en ErrBackendUnavailable;
// el repositorio híbrido es el único consumidor y lo captura siempre.
package remotestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/robertoloco/inventario-antorchadplata/internal/store"
	"github.com/robertoloco/inventario-antorchadplata/internal/store/fieldmap"
)

type RemoteStore struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *RemoteStore { return &RemoteStore{rdb: rdb} }

func rutaColeccion(coleccion string) string { return "rtdb:" + coleccion }
func rutaIndice(coleccion string) string    { return "rtdb:" + coleccion + ":fecha" }

func (s *RemoteStore) GetAll(ctx context.Context, coleccion string) ([]store.Record, error) {
	docs, err := s.rdb.HGetAll(ctx, rutaColeccion(coleccion)).Result()
	if err != nil {
		return nil, store.Unavailable(err)
	}
	recs := make([]store.Record, 0, len(docs))
	for clave, doc := range docs {
		rec, err := decodificar(coleccion, clave, doc)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Add genera una clave única para el registro (salvo que ya traiga una),
// lo escribe bajo la ruta de la colección y lo indexa por su campo de orden.
func (s *RemoteStore) Add(ctx context.Context, coleccion string, rec store.Record) (string, error) {
	id, _ := rec["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	copia := make(store.Record, len(rec)+1)
	for k, v := range rec {
		copia[k] = v
	}
	copia["id"] = id

	if err := s.escribir(ctx, coleccion, id, fieldmap.ToRemote(coleccion, copia)); err != nil {
		return "", err
	}
	return id, nil
}

// Update mezcla únicamente los campos provistos sobre el documento existente
// y sella updated_at. ErrNotFound si la clave no existe en el remoto.
func (s *RemoteStore) Update(ctx context.Context, coleccion, id string, campos store.Record) error {
	actual, err := s.leer(ctx, coleccion, id)
	if err != nil {
		return err
	}
	cambios := fieldmap.ToRemote(coleccion, campos)
	delete(cambios, "id")
	for k, v := range cambios {
		actual[k] = v
	}
	actual["updated_at"] = store.NowISO()
	return s.escribir(ctx, coleccion, id, actual)
}

// Delete es idempotente: la clave y su entrada de índice se eliminan si
// existen, sin error en ausencia.
func (s *RemoteStore) Delete(ctx context.Context, coleccion, id string) error {
	pipe := s.rdb.TxPipeline()
	pipe.HDel(ctx, rutaColeccion(coleccion), id)
	pipe.ZRem(ctx, rutaIndice(coleccion), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return store.Unavailable(err)
	}
	return nil
}

func (s *RemoteStore) GetByID(ctx context.Context, coleccion, id string) (store.Record, error) {
	doc, err := s.leer(ctx, coleccion, id)
	if err != nil {
		return nil, err
	}
	return fieldmap.FromRemote(coleccion, doc), nil
}

// GetByFechaRange consulta el sorted set por score en [desde, hasta]
// inclusive y resuelve las claves contra el hash de la colección.
func (s *RemoteStore) GetByFechaRange(ctx context.Context, coleccion string, desde, hasta time.Time) ([]store.Record, error) {
	claves, err := s.rdb.ZRangeByScore(ctx, rutaIndice(coleccion), &redis.ZRangeBy{
		Min: fmt.Sprintf("%d", desde.UTC().UnixMilli()),
		Max: fmt.Sprintf("%d", hasta.UTC().UnixMilli()),
	}).Result()
	if err != nil {
		return nil, store.Unavailable(err)
	}
	if len(claves) == 0 {
		return []store.Record{}, nil
	}
	docs, err := s.rdb.HMGet(ctx, rutaColeccion(coleccion), claves...).Result()
	if err != nil {
		return nil, store.Unavailable(err)
	}
	recs := make([]store.Record, 0, len(docs))
	for i, doc := range docs {
		raw, ok := doc.(string)
		if !ok {
			continue // clave indexada pero sin documento: tolerado
		}
		rec, err := decodificar(coleccion, claves[i], raw)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

// leer devuelve el documento crudo (convención remota) o ErrNotFound.
func (s *RemoteStore) leer(ctx context.Context, coleccion, id string) (store.Record, error) {
	raw, err := s.rdb.HGet(ctx, rutaColeccion(coleccion), id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, store.Unavailable(err)
	}
	var doc store.Record
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("documento remoto corrupto en %s/%s: %w", coleccion, id, err)
	}
	return doc, nil
}

// escribir persiste el documento (ya en convención remota) y actualiza el
// índice de orden en un pipeline transaccional.
func (s *RemoteStore) escribir(ctx context.Context, coleccion, id string, doc store.Record) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, rutaColeccion(coleccion), id, string(data))
	if score, ok := scoreOrden(coleccion, doc); ok {
		pipe.ZAdd(ctx, rutaIndice(coleccion), redis.Z{Score: score, Member: id})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return store.Unavailable(err)
	}
	return nil
}

func decodificar(coleccion, clave, raw string) (store.Record, error) {
	var doc store.Record
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("documento remoto corrupto en %s/%s: %w", coleccion, clave, err)
	}
	return fieldmap.FromRemote(coleccion, doc), nil
}

// scoreOrden deriva el score del índice a partir del campo de orden del
// documento (created_at para productos, fecha para ventas/caja).
func scoreOrden(coleccion string, doc store.Record) (float64, bool) {
	campo := "fecha"
	if coleccion == store.Productos {
		campo = "created_at"
	}
	valor, _ := doc[campo].(string)
	if valor == "" {
		return 0, false
	}
	t, err := store.ParseFecha(valor)
	if err != nil {
		return 0, false
	}
	return float64(t.UnixMilli()), true
}
