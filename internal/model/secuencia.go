package model

// Secuencia respalda la asignación autoincremental de IDs del store local,
// un contador por colección. Los registros espejados desde el remoto llegan
// con su clave generada y no consumen la secuencia.
type Secuencia struct {
	Coleccion string `gorm:"primaryKey"`
	Valor     int64  `gorm:"not null;default:0"`
}

func (Secuencia) TableName() string { return "secuencias" }
