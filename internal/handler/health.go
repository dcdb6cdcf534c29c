package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/robertoloco/inventario-antorchadplata/internal/infra"
)

// Health reporta el estado de ambos backends. El remoto caído no degrada el
// status global: el modo híbrido sigue operando contra el store local.
func Health(db *gorm.DB, rdb *redis.Client, cb *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := gin.H{"status": "ok"}

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			resp["status"] = "degraded"
			resp["local"] = "down"
		} else {
			resp["local"] = "ok"
		}

		if rdb == nil {
			resp["remoto"] = "no configurado"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := infra.PingRemote(ctx, rdb); err != nil {
				resp["remoto"] = "down"
			} else {
				resp["remoto"] = "ok"
			}
			resp["circuit_breaker"] = cb.State().String()
		}

		c.JSON(http.StatusOK, resp)
	}
}
