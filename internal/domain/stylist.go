package domain

// StylistMetrics resume el desempeño de un grupo canónico de estilistas:
// retención de su cartera de clientes y volumen de servicios vs productos.
// Se deriva por completo de los perfiles de clientes y de las filas
// normalizadas; no tiene almacenamiento propio.
type StylistMetrics struct {
	Stylist         string  `json:"estilista"`
	TotalCustomers  int     `json:"total_clientes"`
	ActiveCustomers int     `json:"clientes_activos"`
	RetentionRate   float64 `json:"tasa_retencion"`
	AtRiskCustomers int     `json:"clientes_en_riesgo"`
	AverageVisits   float64 `json:"visitas_promedio"`
	AverageSpend    float64 `json:"gasto_promedio"`
	ServiceCount    int     `json:"total_servicios"`
	ProductCount    int     `json:"total_productos"`
	ServiceRevenue  float64 `json:"ingreso_servicios"`
	ProductRevenue  float64 `json:"ingreso_productos"`
	AverageTicket   float64 `json:"ticket_promedio"`
}

// CrosstabRow es una fila de la tabla cruzada estilista × segmento.
type CrosstabRow struct {
	Stylist string          `json:"estilista"`
	Counts  map[Segment]int `json:"segmentos"`
	Total   int             `json:"total"`
}
