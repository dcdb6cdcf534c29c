package store

import (
	"encoding/json"
)

// Encode convierte un modelo tipado en un Record usando sus tags JSON
// (convención camelCase). Los montos decimal viajan como string JSON, lo que
// preserva el valor exacto en el viaje de ida y vuelta por cualquier store.
func Encode(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Decode vuelca un Record en el modelo tipado destino.
func Decode(rec Record, out any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
