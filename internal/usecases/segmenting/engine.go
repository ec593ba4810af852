// Package segmenting clasifica clientes en segmentos de retención a partir
// de su historial de visitas y su recencia.
package segmenting

import (
	"github.com/blushsalon/retention-api/internal/config"
	"github.com/blushsalon/retention-api/internal/domain"
)

// Rule es una fila de la tabla de decisión: un rango de visitas con un corte
// de recencia. Al cliente dentro del corte le toca Within; pasado el corte,
// Beyond. Un corte en cero significa "cualquier recencia".
type Rule struct {
	MinVisits        int
	MaxVisits        int // 0 = sin tope superior
	RecencyLimitDays int // 0 = cualquier recencia
	Within           domain.Segment
	Beyond           domain.Segment
}

// Engine evalúa la tabla en orden y la primera regla cuyo rango de visitas
// contiene al cliente decide el segmento. La tabla es la única fuente de
// verdad de la segmentación; ningún otro código deriva segmentos.
type Engine struct {
	rules []Rule
}

// NewEngine arma la tabla con los umbrales configurados:
//
//	=1 visita    → Nuevo / Perdido     (corte: ventana de activo)
//	2-3 visitas  → Ocasional / En Riesgo (corte: máximo de ocasional)
//	4-9 visitas  → Regular / En Riesgo (corte: ventana de activo)
//	≥10 visitas  → VIP, sin importar la recencia
func NewEngine(cfg config.Retention) *Engine {
	return &Engine{
		rules: []Rule{
			{
				MinVisits:        1,
				MaxVisits:        1,
				RecencyLimitDays: cfg.ActiveWindowDays,
				Within:           domain.SegmentNuevo,
				Beyond:           domain.SegmentPerdido,
			},
			{
				MinVisits:        2,
				MaxVisits:        3,
				RecencyLimitDays: cfg.OccasionalMaxDays,
				Within:           domain.SegmentOcasional,
				Beyond:           domain.SegmentEnRiesgo,
			},
			{
				MinVisits:        4,
				MaxVisits:        cfg.VIPMinVisits - 1,
				RecencyLimitDays: cfg.ActiveWindowDays,
				Within:           domain.SegmentRegular,
				Beyond:           domain.SegmentEnRiesgo,
			},
			{
				MinVisits: cfg.VIPMinVisits,
				Within:    domain.SegmentVIP,
			},
		},
	}
}

// Segment es una función pura y total: todo par (visitas, días) cae en
// exactamente una regla de la tabla.
func (e *Engine) Segment(visitCount, daysSinceVisit int) domain.Segment {
	for _, rule := range e.rules {
		if visitCount < rule.MinVisits {
			continue
		}
		if rule.MaxVisits > 0 && visitCount > rule.MaxVisits {
			continue
		}

		if rule.RecencyLimitDays == 0 || daysSinceVisit <= rule.RecencyLimitDays {
			return rule.Within
		}
		return rule.Beyond
	}

	// Inalcanzable con la tabla por defecto (la primera regla cubre desde 1
	// visita y todo perfil tiene al menos una).
	return domain.SegmentNuevo
}
