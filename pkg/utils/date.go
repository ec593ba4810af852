package utils

import (
	"strings"
	"time"
)

// Formatos de fecha que aparecen en los exportes del sistema de caja.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseDate interpreta una fecha en cualquiera de los formatos conocidos.
// Devuelve nil sin error cuando el valor viene vacío.
func ParseDate(dateStr string) (*time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil, nil
	}

	var lastErr error
	for _, layout := range dateLayouts {
		date, err := time.Parse(layout, dateStr)
		if err == nil {
			return &date, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

// DaysBetween devuelve los días completos entre dos instantes.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
