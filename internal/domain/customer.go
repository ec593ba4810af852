package domain

import "time"

// Segment es la etiqueta de retención de un cliente. Los valores son los
// mismos que el salón usa en sus reportes, por eso quedan en español.
type Segment string

const (
	SegmentNuevo     Segment = "Nuevo"
	SegmentOcasional Segment = "Ocasional"
	SegmentRegular   Segment = "Regular"
	SegmentVIP       Segment = "VIP"
	SegmentEnRiesgo  Segment = "En Riesgo"
	SegmentPerdido   Segment = "Perdido"
)

// CustomerProfile agrega todas las transacciones de un cliente en un perfil
// de retención. Se construye una sola vez por corrida de análisis.
type CustomerProfile struct {
	Name           string    `json:"cliente"`
	Phone          string    `json:"telefono"`
	FirstVisit     time.Time `json:"primera_visita"`
	LastVisit      time.Time `json:"ultima_visita"`
	VisitCount     int       `json:"num_visitas"`
	TotalSpend     float64   `json:"gasto_total"`
	AverageSpend   float64   `json:"gasto_promedio"`
	DaysSinceVisit int       `json:"dias_sin_visita"`
	StylistGroup   string    `json:"estilista"`
	Segment        Segment   `json:"segmento"`
	Message        string    `json:"mensaje"`
}

// CustomerFilters es el contrato de filtrado que la capa de presentación usa
// para armar listas de contacto: los tres predicados se intersectan (AND).
// Un slice vacío significa "sin restricción" para ese predicado.
type CustomerFilters struct {
	Segments          []Segment `json:"segmentos"`
	Stylists          []string  `json:"estilistas"`
	MinDaysSinceVisit int       `json:"dias_minimos"`
}

// Matches indica si el cliente pasa los tres predicados del filtro.
func (f *CustomerFilters) Matches(c *CustomerProfile) bool {
	if f == nil {
		return true
	}

	if len(f.Segments) > 0 && !containsSegment(f.Segments, c.Segment) {
		return false
	}

	if len(f.Stylists) > 0 && !containsString(f.Stylists, c.StylistGroup) {
		return false
	}

	return c.DaysSinceVisit >= f.MinDaysSinceVisit
}

func containsSegment(list []Segment, s Segment) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
