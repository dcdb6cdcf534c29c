package service

import (
	"context"
	"errors"

	"github.com/robertoloco/inventario-antorchadplata/internal/dto"
	"github.com/robertoloco/inventario-antorchadplata/internal/model"
	"github.com/robertoloco/inventario-antorchadplata/internal/repository"
	"github.com/robertoloco/inventario-antorchadplata/internal/store"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*model.Producto, error)
	Listar(ctx context.Context) ([]model.Producto, error)
	ObtenerPorID(ctx context.Context, id string) (*model.Producto, error)
	Actualizar(ctx context.Context, id string, req dto.ActualizarProductoRequest) (*model.Producto, error)
	Eliminar(ctx context.Context, id string) error
	AjustarStock(ctx context.Context, id string, delta int) (*model.Producto, error)
}

type productoService struct {
	productos repository.ProductoRepository
}

func NewProductoService(productos repository.ProductoRepository) ProductoService {
	return &productoService{productos: productos}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*model.Producto, error) {
	producto := &model.Producto{
		Nombre:    req.Nombre,
		Categoria: req.Categoria,
		Precio:    req.Precio,
		Stock:     req.Stock,
	}
	if _, err := s.productos.Add(ctx, producto); err != nil {
		return nil, err
	}
	return producto, nil
}

func (s *productoService) Listar(ctx context.Context) ([]model.Producto, error) {
	return s.productos.GetAll(ctx)
}

func (s *productoService) ObtenerPorID(ctx context.Context, id string) (*model.Producto, error) {
	producto, err := s.productos.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProductoNoEncontrado
	}
	return producto, err
}

func (s *productoService) Actualizar(ctx context.Context, id string, req dto.ActualizarProductoRequest) (*model.Producto, error) {
	campos := req.Campos()
	if err := s.productos.Update(ctx, id, campos); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	return s.ObtenerPorID(ctx, id)
}

// Eliminar borra en firme; no hay soft-delete ni tombstones en el catálogo.
func (s *productoService) Eliminar(ctx context.Context, id string) error {
	return s.productos.Delete(ctx, id)
}

func (s *productoService) AjustarStock(ctx context.Context, id string, delta int) (*model.Producto, error) {
	if err := s.productos.AjustarStock(ctx, id, delta); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	return s.ObtenerPorID(ctx, id)
}
