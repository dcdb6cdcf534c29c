package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/robertoloco/inventario-antorchadplata/internal/model"
)

// NewDatabase abre (o crea) la base SQLite embebida y aplica las migraciones.
// El esquema es append-only: AutoMigrate agrega tablas/columnas/índices pero
// nunca elimina datos, y los parches SQL posteriores son todos idempotentes.
func NewDatabase(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de datos: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// SQLite es un escritor a la vez; WAL evita que las lecturas bloqueen.
	if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		return nil, err
	}

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migraciones: %w", err)
	}
	return db, nil
}

// RunMigrations aplica el esquema completo. Expuesta para los tests que
// trabajan sobre una base en memoria.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Producto{},
		&model.Venta{},
		&model.MovimientoCaja{},
		&model.Secuencia{},
	); err != nil {
		return err
	}
	return applySchemaPatches(db)
}

// applySchemaPatches cubre lo que AutoMigrate no expresa. Cada sentencia usa
// IF NOT EXISTS, así que re-ejecutar sobre una base ya parcheada es un no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// índice compuesto para el listado de ventas por tipo y fecha
		`CREATE INDEX IF NOT EXISTS idx_ventas_tipo_fecha ON ventas (tipo, fecha)`,
		// índice para los rangos de balance por día
		`CREATE INDEX IF NOT EXISTS idx_caja_tipo_fecha ON caja (tipo, fecha)`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql, err)
		}
	}
	return nil
}
