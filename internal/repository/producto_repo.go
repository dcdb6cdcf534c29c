package repository

import (
	"context"
	"sync"

	"github.com/robertoloco/inventario-antorchadplata/internal/infra"
	"github.com/robertoloco/inventario-antorchadplata/internal/model"
	"github.com/robertoloco/inventario-antorchadplata/internal/store"
)

// ProductoRepository es el contrato de acceso al catálogo. Los servicios
// dependen de esta interfaz, no de la implementación híbrida, lo que permite
// tests unitarios con stores en memoria.
type ProductoRepository interface {
	GetAll(ctx context.Context) ([]model.Producto, error)
	Add(ctx context.Context, p *model.Producto) (string, error)
	Update(ctx context.Context, id string, campos store.Record) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Producto, error)

	// AjustarStock lee el stock actual y escribe stock+delta (delta puede ser
	// negativo). El read-modify-write se serializa por producto con un mutex
	// en proceso: sin contención el efecto observable es idéntico al del
	// escritor único.
	AjustarStock(ctx context.Context, id string, delta int) error
}

type productoRepo struct {
	hibrido
	candados sync.Map // id → *sync.Mutex, uno por producto
}

func NewProductoRepository(local, remoto store.Store, cb *infra.CircuitBreaker) ProductoRepository {
	return &productoRepo{hibrido: newHibrido(store.Productos, local, remoto, cb)}
}

func (r *productoRepo) GetAll(ctx context.Context) ([]model.Producto, error) {
	recs, err := r.getAll(ctx)
	if err != nil {
		return nil, err
	}
	productos := make([]model.Producto, 0, len(recs))
	for _, rec := range recs {
		var p model.Producto
		if err := store.Decode(rec, &p); err != nil {
			return nil, err
		}
		productos = append(productos, p)
	}
	return productos, nil
}

// Add sella createdAt una única vez; ediciones posteriores no lo tocan.
func (r *productoRepo) Add(ctx context.Context, p *model.Producto) (string, error) {
	if p.CreatedAt == "" {
		p.CreatedAt = store.NowISO()
	}
	rec, err := store.Encode(p)
	if err != nil {
		return "", err
	}
	id, err := r.add(ctx, rec)
	if err != nil {
		return "", err
	}
	p.ID = id
	return id, nil
}

func (r *productoRepo) Update(ctx context.Context, id string, campos store.Record) error {
	// createdAt es inmutable desde la creación
	return r.update(ctx, id, sinCampo(campos, "createdAt"))
}

func (r *productoRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *productoRepo) GetByID(ctx context.Context, id string) (*model.Producto, error) {
	rec, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var p model.Producto
	if err := store.Decode(rec, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) AjustarStock(ctx context.Context, id string, delta int) error {
	mu := r.candado(id)
	mu.Lock()
	defer mu.Unlock()

	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return r.update(ctx, id, store.Record{"stock": p.Stock + delta})
}

func (r *productoRepo) candado(id string) *sync.Mutex {
	mu, _ := r.candados.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
