// Package worker contiene el re-espejador: un loop periódico que empuja al
// store remoto los registros que solo existen localmente (escrituras hechas
// offline o espejos locales que el remoto nunca recibió). Es best-effort:
// cada ciclo es idempotente, los fallos se loguean y el siguiente ciclo
// reintenta.
package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robertoloco/inventario-antorchadplata/internal/infra"
	"github.com/robertoloco/inventario-antorchadplata/internal/store"
)

type Sync struct {
	local    store.Store
	remoto   store.Store
	cb       *infra.CircuitBreaker
	interval time.Duration
}

func NewSync(local, remoto store.Store, cb *infra.CircuitBreaker, interval time.Duration) *Sync {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sync{local: local, remoto: remoto, cb: cb, interval: interval}
}

// Start corre el loop hasta que ctx se cancele. Pensado para `go sync.Start(ctx)`.
func (s *Sync) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	log.Info().Dur("interval", s.interval).Msg("re-espejador local→remoto iniciado")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("re-espejador detenido")
			return
		case <-ticker.C:
			s.Ciclo(ctx)
		}
	}
}

// Ciclo re-espeja las tres colecciones una vez. Exportado para tests y para
// forzar una pasada tras recuperar conectividad.
func (s *Sync) Ciclo(ctx context.Context) {
	if s.cb != nil && s.cb.State() == infra.CBOpen {
		return // el remoto está caído; no vale la pena intentar
	}
	for _, coleccion := range []string{store.Productos, store.Ventas, store.Caja} {
		if err := s.espejarColeccion(ctx, coleccion); err != nil {
			log.Warn().Str("coleccion", coleccion).Err(err).Msg("ciclo de re-espejado falló")
			return // el remoto no responde; abortar el ciclo completo
		}
	}
}

// espejarColeccion empuja al remoto cada registro local cuyo id no figura
// allá. Nunca pisa un documento remoto existente: el remoto es autoritativo
// para los ids que ya conoce.
func (s *Sync) espejarColeccion(ctx context.Context, coleccion string) error {
	remotos, err := s.remoto.GetAll(ctx, coleccion)
	if err != nil {
		return err
	}
	conocidos := make(map[string]struct{}, len(remotos))
	for _, rec := range remotos {
		if id, ok := rec["id"].(string); ok {
			conocidos[id] = struct{}{}
		}
	}

	locales, err := s.local.GetAll(ctx, coleccion)
	if err != nil {
		return err
	}
	faltan := 0
	for _, rec := range locales {
		id, _ := rec["id"].(string)
		if id == "" {
			continue
		}
		if _, ok := conocidos[id]; ok {
			continue
		}
		if _, err := s.remoto.Add(ctx, coleccion, rec); err != nil {
			return err
		}
		faltan++
	}
	if faltan > 0 {
		log.Info().Str("coleccion", coleccion).Int("registros", faltan).Msg("registros re-espejados al remoto")
	}
	return nil
}
