package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/robertoloco/inventario-antorchadplata/internal/config"
	"github.com/robertoloco/inventario-antorchadplata/internal/handler"
	"github.com/robertoloco/inventario-antorchadplata/internal/infra"
	"github.com/robertoloco/inventario-antorchadplata/internal/middleware"
	"github.com/robertoloco/inventario-antorchadplata/internal/repository"
	"github.com/robertoloco/inventario-antorchadplata/internal/service"
	"github.com/robertoloco/inventario-antorchadplata/internal/store"
	"github.com/robertoloco/inventario-antorchadplata/internal/store/localstore"
	"github.com/robertoloco/inventario-antorchadplata/internal/store/remotestore"
)

// New arma todas las dependencias y devuelve el engine configurado.
// Grafo: Handler ← Service ← Repository híbrido ← stores local/remoto.
// rdb puede ser nil (modo solo-local).
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, cb *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Cadena global de middleware (el orden importa)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())

	// ── Stores ───────────────────────────────────────────────────────────────
	local := localstore.New(db)
	var remoto store.Store
	if rdb != nil {
		remoto = remotestore.New(rdb)
	}

	// ── Repositorios híbridos ────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(local, remoto, cb)
	ventaRepo := repository.NewVentaRepository(local, remoto, cb)
	cajaRepo := repository.NewCajaRepository(local, remoto, cb)

	// ── Servicios ────────────────────────────────────────────────────────────
	productoSvc := service.NewProductoService(productoRepo)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, cajaRepo)
	cajaSvc := service.NewCajaService(cajaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productosH := handler.NewProductosHandler(productoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)

	// ── Rutas ────────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb, cb))

	v1 := r.Group("/v1")
	{
		prods := v1.Group("/productos")
		{
			prods.GET("", productosH.Listar)
			prods.POST("", productosH.Crear)
			prods.GET("/:id", productosH.ObtenerPorID)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Eliminar)
			prods.PATCH("/:id/stock", productosH.AjustarStock)
		}

		v1.POST("/ventas", ventasH.RegistrarVenta)
		v1.GET("/ventas", ventasH.Listar)
		v1.POST("/produccion", ventasH.RegistrarProduccion)

		caja := v1.Group("/caja")
		{
			caja.GET("", cajaH.Listar)
			caja.POST("/movimiento", cajaH.RegistrarMovimiento)
			caja.GET("/balance", cajaH.Balance)
		}
	}

	return r
}
