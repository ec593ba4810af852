package domain

import "time"

// AnalysisSummary son los indicadores globales que la capa de presentación
// muestra como tarjetas: total de clientes, retención global, en riesgo y
// activos, más las estadísticas generales de visitas y gasto.
type AnalysisSummary struct {
	TotalCustomers  int     `json:"total_clientes"`
	RetentionRate   float64 `json:"tasa_retencion"`
	AtRiskCustomers int     `json:"clientes_en_riesgo"`
	ActiveCustomers int     `json:"clientes_activos"`

	VisitStats VisitStats `json:"visitas"`
	SpendStats SpendStats `json:"gasto"`
}

// VisitStats resume la distribución de visitas por cliente.
type VisitStats struct {
	Mean             float64 `json:"promedio"`
	Median           float64 `json:"mediana"`
	Max              int     `json:"maximo"`
	SingleVisitCount int     `json:"una_sola_visita"`
	SingleVisitShare float64 `json:"una_sola_visita_pct"`
}

// SpendStats resume la distribución de gasto por cliente.
type SpendStats struct {
	MeanPerVisit    float64 `json:"promedio_por_visita"`
	MeanPerCustomer float64 `json:"promedio_por_cliente"`
	MaxTotal        float64 `json:"gasto_maximo"`
}

// AnalysisResult es el resultado completo de una corrida del pipeline sobre
// un archivo subido. Todo es inmutable después de la corrida; el repositorio
// en memoria lo guarda tal cual bajo el ID corto de la corrida.
type AnalysisResult struct {
	ID         string    `json:"id"`
	AnalyzedAt time.Time `json:"analizado_en"` // reloj de análisis inyectado
	CreatedAt  time.Time `json:"creado_en"`

	Records   []*NormalizedRecord `json:"-"`
	Customers []*CustomerProfile  `json:"clientes"`
	Stylists  []*StylistMetrics   `json:"estilistas"`
	Crosstab  []*CrosstabRow      `json:"tabla_cruzada"`
	Summary   *AnalysisSummary    `json:"resumen"`

	DroppedNoStaff int `json:"filas_sin_empleado"`
	DroppedNoDate  int `json:"filas_sin_fecha"`
}
