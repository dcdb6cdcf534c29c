// Package localstore implementa store.Store sobre SQLite vía GORM: el store
// embebido, durable entre sesiones, que mantiene la app usable sin red.
// Asigna IDs numéricos autoincrementales desde la tabla secuencias; los
// registros espejados desde el remoto conservan la clave que trajeron.
package localstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/robertoloco/inventario-antorchadplata/internal/model"
	"github.com/robertoloco/inventario-antorchadplata/internal/store"
	"github.com/robertoloco/inventario-antorchadplata/internal/store/fieldmap"
)

type LocalStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *LocalStore { return &LocalStore{db: db} }

// prototipo devuelve un puntero a slice del modelo de la colección, listo
// para Find.
func prototipo(coleccion string) (any, error) {
	switch coleccion {
	case store.Productos:
		return &[]model.Producto{}, nil
	case store.Ventas:
		return &[]model.Venta{}, nil
	case store.Caja:
		return &[]model.MovimientoCaja{}, nil
	}
	return nil, fmt.Errorf("colección desconocida: %q", coleccion)
}

func encodeSlice(registros any) ([]store.Record, error) {
	var recs []store.Record
	switch rs := registros.(type) {
	case *[]model.Producto:
		for i := range *rs {
			rec, err := store.Encode((*rs)[i])
			if err != nil {
				return nil, err
			}
			recs = append(recs, rec)
		}
	case *[]model.Venta:
		for i := range *rs {
			rec, err := store.Encode((*rs)[i])
			if err != nil {
				return nil, err
			}
			recs = append(recs, rec)
		}
	case *[]model.MovimientoCaja:
		for i := range *rs {
			rec, err := store.Encode((*rs)[i])
			if err != nil {
				return nil, err
			}
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func (s *LocalStore) GetAll(ctx context.Context, coleccion string) ([]store.Record, error) {
	registros, err := prototipo(coleccion)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Find(registros).Error; err != nil {
		return nil, err
	}
	return encodeSlice(registros)
}

// Add persiste rec. Si no trae "id", asigna el siguiente de la secuencia de
// la colección (dentro de la misma transacción que la inserción); si lo trae,
// como pasa con los espejos de escrituras remotas, lo conserva tal cual.
func (s *LocalStore) Add(ctx context.Context, coleccion string, rec store.Record) (string, error) {
	if _, err := prototipo(coleccion); err != nil {
		return "", err
	}
	id, _ := rec["id"].(string)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if id == "" {
			siguiente, err := proximoID(tx, coleccion)
			if err != nil {
				return err
			}
			id = siguiente
		}
		copia := make(store.Record, len(rec)+1)
		for k, v := range rec {
			copia[k] = v
		}
		copia["id"] = id
		registro, err := decodeUno(coleccion, copia)
		if err != nil {
			return err
		}
		return tx.Create(registro).Error
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Update mezcla los campos provistos sobre el registro existente.
// Devuelve store.ErrNotFound si el id no existe; nunca un no-op silencioso.
func (s *LocalStore) Update(ctx context.Context, coleccion, id string, campos store.Record) error {
	if _, err := prototipo(coleccion); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existe int64
		if err := tx.Table(coleccion).Where("id = ?", id).Count(&existe).Error; err != nil {
			return err
		}
		if existe == 0 {
			return store.ErrNotFound
		}
		columnas := columnasDe(coleccion, campos)
		if len(columnas) == 0 {
			return nil
		}
		return tx.Table(coleccion).Where("id = ?", id).Updates(columnas).Error
	})
}

// Delete es idempotente: borrar un id inexistente no es error.
func (s *LocalStore) Delete(ctx context.Context, coleccion, id string) error {
	if _, err := prototipo(coleccion); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Table(coleccion).Where("id = ?", id).Delete(nil).Error
}

func (s *LocalStore) GetByID(ctx context.Context, coleccion, id string) (store.Record, error) {
	registro, err := modeloVacio(coleccion)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Table(coleccion).Where("id = ?", id).First(registro).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return store.Encode(registro)
}

func (s *LocalStore) GetByFechaRange(ctx context.Context, coleccion string, desde, hasta time.Time) ([]store.Record, error) {
	registros, err := prototipo(coleccion)
	if err != nil {
		return nil, err
	}
	columna := columnaOrden(coleccion)
	err = s.db.WithContext(ctx).
		Where(columna+" BETWEEN ? AND ?", store.FormatFecha(desde), store.FormatFecha(hasta)).
		Order(columna + " ASC").
		Find(registros).Error
	if err != nil {
		return nil, err
	}
	return encodeSlice(registros)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func decodeUno(coleccion string, rec store.Record) (any, error) {
	registro, err := modeloVacio(coleccion)
	if err != nil {
		return nil, err
	}
	if err := store.Decode(rec, registro); err != nil {
		return nil, err
	}
	return registro, nil
}

func modeloVacio(coleccion string) (any, error) {
	switch coleccion {
	case store.Productos:
		return &model.Producto{}, nil
	case store.Ventas:
		return &model.Venta{}, nil
	case store.Caja:
		return &model.MovimientoCaja{}, nil
	}
	return nil, fmt.Errorf("colección desconocida: %q", coleccion)
}

// columnasDe traduce las claves camelCase de un Record parcial a nombres de
// columna. Las columnas SQL comparten la convención snake_case del remoto,
// así que la tabla de fieldmap sirve también aquí. "id" nunca se actualiza.
func columnasDe(coleccion string, campos store.Record) map[string]any {
	traducido := fieldmap.ToRemote(coleccion, campos)
	delete(traducido, "id")
	delete(traducido, "updated_at")
	return traducido
}

func columnaOrden(coleccion string) string {
	if coleccion == store.Productos {
		return "created_at"
	}
	return "fecha"
}

// proximoID incrementa y devuelve el contador de la colección.
func proximoID(tx *gorm.DB, coleccion string) (string, error) {
	var sec model.Secuencia
	if err := tx.Where(model.Secuencia{Coleccion: coleccion}).FirstOrCreate(&sec).Error; err != nil {
		return "", err
	}
	sec.Valor++
	if err := tx.Save(&sec).Error; err != nil {
		return "", err
	}
	return strconv.FormatInt(sec.Valor, 10), nil
}
