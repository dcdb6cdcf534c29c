package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/robertoloco/inventario-antorchadplata/internal/apierror"
	"github.com/robertoloco/inventario-antorchadplata/internal/dto"
	"github.com/robertoloco/inventario-antorchadplata/internal/service"
	"github.com/robertoloco/inventario-antorchadplata/internal/store"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler {
	return &VentasHandler{svc: svc}
}

func (h *VentasHandler) RegistrarVenta(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarVenta(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VentasHandler) RegistrarProduccion(c *gin.Context) {
	var req dto.RegistrarProduccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarProduccion(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar devuelve todas las ventas, o solo las del día con ?fecha=YYYY-MM-DD.
func (h *VentasHandler) Listar(c *gin.Context) {
	if fecha := c.Query("fecha"); fecha != "" {
		dia, err := store.ParseFecha(fecha + "T00:00:00.000Z")
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("fecha invalida, se espera YYYY-MM-DD"))
			return
		}
		resp, err := h.svc.ListarPorFecha(c.Request.Context(), dia)
		if err != nil {
			responderError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}
	resp, err := h.svc.ListarVentas(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
