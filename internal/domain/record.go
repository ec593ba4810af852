// Package domain contiene las estructuras de datos del dominio de la aplicación
package domain

import "time"

// TransactionRecord representa una fila cruda del histórico de ventas del salón.
// La fecha puede venir vacía en el archivo; el normalizador la resuelve por
// forward-fill antes de cualquier agregación.
type TransactionRecord struct {
	Customer  string     `json:"cliente"`
	Staff     string     `json:"empleado"`
	Date      *time.Time `json:"fecha"`
	Item      string     `json:"item"`
	ItemClass string     `json:"clase"` // columna CLASE, opcional
	Total     float64    `json:"total"`
	Phone     string     `json:"telefono"`
}

// NormalizedRecord es una fila ya validada y enriquecida: fecha resuelta,
// estilista agrupado en su grupo canónico y el item clasificado como
// producto o servicio. Inmutable después de creado.
type NormalizedRecord struct {
	Customer   string    `json:"cliente"`
	Staff      string    `json:"empleado"`
	StaffGroup string    `json:"estilista"`
	Date       time.Time `json:"fecha"`
	Month      string    `json:"mes"` // período mm-yyyy (ej: 01-2024)
	Item       string    `json:"item"`
	IsProduct  bool      `json:"es_producto"`
	Total      float64   `json:"total"`
	Phone      string    `json:"telefono"`
}
