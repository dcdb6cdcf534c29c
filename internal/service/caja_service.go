package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/robertoloco/inventario-antorchadplata/internal/dto"
	"github.com/robertoloco/inventario-antorchadplata/internal/model"
	"github.com/robertoloco/inventario-antorchadplata/internal/repository"
)

type CajaService interface {
	ListarMovimientos(ctx context.Context) ([]model.MovimientoCaja, error)
	RegistrarMovimiento(ctx context.Context, req dto.MovimientoManualRequest) (*model.MovimientoCaja, error)
	GetBalance(ctx context.Context) (decimal.Decimal, error)
	GetBalanceByFecha(ctx context.Context, dia time.Time) (decimal.Decimal, error)
}

type cajaService struct {
	caja repository.CajaRepository
}

func NewCajaService(caja repository.CajaRepository) CajaService {
	return &cajaService{caja: caja}
}

func (s *cajaService) ListarMovimientos(ctx context.Context) ([]model.MovimientoCaja, error) {
	return s.caja.GetAll(ctx)
}

// RegistrarMovimiento asienta un ingreso/egreso manual. Los movimientos no
// se editan ni se borran: las correcciones son movimientos inversos.
func (s *cajaService) RegistrarMovimiento(ctx context.Context, req dto.MovimientoManualRequest) (*model.MovimientoCaja, error) {
	movimiento := &model.MovimientoCaja{
		Tipo:        req.Tipo,
		Monto:       req.Monto,
		Descripcion: req.Descripcion,
		MetodoPago:  req.MetodoPago,
	}
	if _, err := s.caja.Add(ctx, movimiento); err != nil {
		return nil, err
	}
	return movimiento, nil
}

// GetBalance reduce el libro completo: Σ ingresos − Σ egresos.
func (s *cajaService) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	movimientos, err := s.caja.GetAll(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return balance(movimientos), nil
}

// GetBalanceByFecha reduce solo los movimientos del día de dia (inclusive).
func (s *cajaService) GetBalanceByFecha(ctx context.Context, dia time.Time) (decimal.Decimal, error) {
	movimientos, err := s.caja.GetByFecha(ctx, dia)
	if err != nil {
		return decimal.Zero, err
	}
	return balance(movimientos), nil
}

func balance(movimientos []model.MovimientoCaja) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movimientos {
		total = total.Add(m.Signo())
	}
	return total
}
