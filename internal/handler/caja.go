package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/robertoloco/inventario-antorchadplata/internal/apierror"
	"github.com/robertoloco/inventario-antorchadplata/internal/dto"
	"github.com/robertoloco/inventario-antorchadplata/internal/service"
	"github.com/robertoloco/inventario-antorchadplata/internal/store"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler {
	return &CajaHandler{svc: svc}
}

func (h *CajaHandler) Listar(c *gin.Context) {
	movimientos, err := h.svc.ListarMovimientos(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, movimientos)
}

func (h *CajaHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.MovimientoManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	movimiento, err := h.svc.RegistrarMovimiento(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, movimiento)
}

// Balance devuelve el balance histórico completo, o el del día con
// ?fecha=YYYY-MM-DD.
func (h *CajaHandler) Balance(c *gin.Context) {
	ctx := c.Request.Context()
	if fecha := c.Query("fecha"); fecha != "" {
		dia, err := store.ParseFecha(fecha + "T00:00:00.000Z")
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("fecha invalida, se espera YYYY-MM-DD"))
			return
		}
		balance, err := h.svc.GetBalanceByFecha(ctx, dia)
		if err != nil {
			responderError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance, Fecha: fecha})
		return
	}
	balance, err := h.svc.GetBalance(ctx)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}
