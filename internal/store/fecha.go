package store

import (
	"fmt"
	"time"
)

// FechaLayout es el formato ISO-8601 con milisegundos en UTC que usan todas
// las marcas de tiempo persistidas. Al ser de ancho fijo, la comparación
// lexicográfica de strings coincide con el orden cronológico, y los rangos
// por fecha funcionan igual en SQLite (BETWEEN sobre texto) que en memoria.
const FechaLayout = "2006-01-02T15:04:05.000Z"

// NowISO devuelve el instante actual en FechaLayout.
func NowISO() string {
	return time.Now().UTC().Format(FechaLayout)
}

// FormatFecha normaliza un time.Time a FechaLayout.
func FormatFecha(t time.Time) string {
	return t.UTC().Format(FechaLayout)
}

// ParseFecha acepta FechaLayout y las variantes RFC3339 habituales.
func ParseFecha(s string) (time.Time, error) {
	for _, layout := range []string{FechaLayout, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida: %q", s)
}

// DiaRange devuelve los límites inclusivos [00:00:00.000, 23:59:59.999] del
// día de t en UTC, para consultas de balance/ventas por día.
func DiaRange(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	desde := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	hasta := desde.Add(24*time.Hour - time.Millisecond)
	return desde, hasta
}
