package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robertoloco/inventario-antorchadplata/internal/config"
	"github.com/robertoloco/inventario-antorchadplata/internal/infra"
	"github.com/robertoloco/inventario-antorchadplata/internal/router"
	"github.com/robertoloco/inventario-antorchadplata/internal/store/localstore"
	"github.com/robertoloco/inventario-antorchadplata/internal/store/remotestore"
	"github.com/robertoloco/inventario-antorchadplata/internal/worker"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo cargar la configuración")
	}

	db, err := infra.NewDatabase(cfg.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo abrir el store local")
	}

	// El modo híbrido se decide una vez acá y se inyecta; rdb nil = solo-local.
	var rdb *redis.Client
	var cb *infra.CircuitBreaker
	if cfg.RemotoConfigurado() {
		rdb, err = infra.NewRedis(cfg.RemoteRedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("REMOTE_REDIS_URL inválida")
		}
		cb = infra.NewCircuitBreaker(infra.DefaultCBConfig())
		log.Info().Msg("modo híbrido: store remoto configurado")
	} else {
		log.Info().Msg("modo solo-local: sin store remoto")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Re-espejador local → remoto, solo con remoto configurado
	if rdb != nil {
		sync := worker.NewSync(
			localstore.New(db),
			remotestore.New(rdb),
			cb,
			time.Duration(cfg.SyncIntervalSeconds)*time.Second,
		)
		go sync.Start(ctx)
	}

	r := router.New(cfg, db, rdb, cb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Apagado prolijo con SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("inventario backend escuchando en :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("error del servidor")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("apagado forzado")
	}
	log.Info().Msg("servidor finalizado")
}
