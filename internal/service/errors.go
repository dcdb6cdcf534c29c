package service

import "errors"

// Errores de validación del dominio. Suben al llamador sin modificar; los
// handlers los mapean a respuestas HTTP.
var (
	ErrProductoNoEncontrado = errors.New("producto no encontrado")
	ErrStockInsuficiente    = errors.New("stock insuficiente")
)
