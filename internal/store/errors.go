package store

import (
	"errors"
	"fmt"
)

// ErrNotFound indica que el registro buscado (o el destino de un Update)
// no existe. Es el único error del store local que atraviesa el repositorio
// híbrido hacia arriba.
var ErrNotFound = errors.New("registro no encontrado")

// ErrBackendUnavailable envuelve cualquier fallo de transporte/servicio del
// store remoto. El repositorio híbrido lo captura siempre y degrada al store
// local; nunca llega a los llamadores de arriba.
var ErrBackendUnavailable = errors.New("backend remoto no disponible")

// Unavailable envuelve err como fallo de backend remoto, conservando la causa
// para los logs.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
}
