// Package reporting agrega los resultados por estilista y arma las vistas
// que consume la capa de presentación: métricas del equipo, tabla cruzada,
// resumen global, filtros y listas top.
package reporting

import (
	"sort"

	"github.com/blushsalon/retention-api/internal/config"
	"github.com/blushsalon/retention-api/internal/domain"
	"github.com/blushsalon/retention-api/pkg/utils"
)

// Reporter deriva todas las vistas agregadas a partir de los perfiles de
// clientes y las filas normalizadas. Todos los promedios y porcentajes
// devuelven 0 ante denominadores en cero, nunca fallan.
type Reporter interface {
	StylistMetrics(records []*domain.NormalizedRecord, customers []*domain.CustomerProfile) []*domain.StylistMetrics
	Crosstab(customers []*domain.CustomerProfile) []*domain.CrosstabRow
	Summary(customers []*domain.CustomerProfile) *domain.AnalysisSummary
	FilterCustomers(customers []*domain.CustomerProfile, filters *domain.CustomerFilters) []*domain.CustomerProfile
	TopCustomers(customers []*domain.CustomerProfile, stylist string, limit int) []*domain.CustomerProfile
}

type service struct {
	displayOrder     []string
	activeWindowDays int
}

func NewService(salon config.Salon, retention config.Retention) Reporter {
	return &service{
		displayOrder:     salon.DisplayOrder,
		activeWindowDays: retention.ActiveWindowDays,
	}
}

// StylistMetrics recorre los grupos en el orden de visualización configurado
// y omite los que no tienen ninguna transacción asociada.
func (s *service) StylistMetrics(records []*domain.NormalizedRecord, customers []*domain.CustomerProfile) []*domain.StylistMetrics {
	metrics := make([]*domain.StylistMetrics, 0, len(s.displayOrder))

	for _, stylist := range s.displayOrder {
		var stylistRecords []*domain.NormalizedRecord
		for _, record := range records {
			if record.StaffGroup == stylist {
				stylistRecords = append(stylistRecords, record)
			}
		}

		if len(stylistRecords) == 0 {
			continue
		}

		var stylistCustomers []*domain.CustomerProfile
		for _, customer := range customers {
			if customer.StylistGroup == stylist {
				stylistCustomers = append(stylistCustomers, customer)
			}
		}

		metrics = append(metrics, s.buildMetrics(stylist, stylistRecords, stylistCustomers))
	}

	return metrics
}

func (s *service) buildMetrics(
	stylist string,
	records []*domain.NormalizedRecord,
	customers []*domain.CustomerProfile,
) *domain.StylistMetrics {
	m := &domain.StylistMetrics{
		Stylist:        stylist,
		TotalCustomers: len(customers),
	}

	returning := 0
	visits := make([]float64, 0, len(customers))
	spends := make([]float64, 0, len(customers))

	for _, customer := range customers {
		if customer.DaysSinceVisit <= s.activeWindowDays {
			m.ActiveCustomers++
		}
		if customer.VisitCount > 1 {
			returning++
		}
		if customer.Segment == domain.SegmentEnRiesgo {
			m.AtRiskCustomers++
		}
		visits = append(visits, float64(customer.VisitCount))
		spends = append(spends, customer.AverageSpend)
	}

	if m.TotalCustomers > 0 {
		m.RetentionRate = utils.RoundWithTwoDecimalPlace(float64(returning) / float64(m.TotalCustomers) * 100)
	}
	m.AverageVisits = utils.RoundWithTwoDecimalPlace(utils.Mean(visits))
	m.AverageSpend = utils.RoundWithTwoDecimalPlace(utils.Mean(spends))

	ticketTotal := 0.0
	for _, record := range records {
		if record.IsProduct {
			m.ProductCount++
			m.ProductRevenue += record.Total
		} else {
			m.ServiceCount++
			m.ServiceRevenue += record.Total
		}
		ticketTotal += record.Total
	}

	if len(records) > 0 {
		m.AverageTicket = utils.RoundWithTwoDecimalPlace(ticketTotal / float64(len(records)))
	}

	return m
}

// Crosstab cuenta clientes por grupo de estilista × segmento, siguiendo el
// orden de visualización y omitiendo grupos sin clientes.
func (s *service) Crosstab(customers []*domain.CustomerProfile) []*domain.CrosstabRow {
	rows := make([]*domain.CrosstabRow, 0, len(s.displayOrder))

	for _, stylist := range s.displayOrder {
		row := &domain.CrosstabRow{
			Stylist: stylist,
			Counts:  make(map[domain.Segment]int),
		}

		for _, customer := range customers {
			if customer.StylistGroup != stylist {
				continue
			}
			row.Counts[customer.Segment]++
			row.Total++
		}

		if row.Total > 0 {
			rows = append(rows, row)
		}
	}

	return rows
}

// Summary calcula los indicadores globales y las estadísticas generales de
// visitas y gasto que la pantalla principal muestra como tarjetas.
func (s *service) Summary(customers []*domain.CustomerProfile) *domain.AnalysisSummary {
	summary := &domain.AnalysisSummary{
		TotalCustomers: len(customers),
	}

	returning := 0
	visits := make([]float64, 0, len(customers))
	avgSpends := make([]float64, 0, len(customers))
	totalSpends := make([]float64, 0, len(customers))

	for _, customer := range customers {
		if customer.VisitCount > 1 {
			returning++
		}
		if customer.DaysSinceVisit <= s.activeWindowDays {
			summary.ActiveCustomers++
		}
		if customer.Segment == domain.SegmentEnRiesgo {
			summary.AtRiskCustomers++
		}
		if customer.VisitCount == 1 {
			summary.VisitStats.SingleVisitCount++
		}
		if customer.VisitCount > summary.VisitStats.Max {
			summary.VisitStats.Max = customer.VisitCount
		}

		visits = append(visits, float64(customer.VisitCount))
		avgSpends = append(avgSpends, customer.AverageSpend)
		totalSpends = append(totalSpends, customer.TotalSpend)
		if customer.TotalSpend > summary.SpendStats.MaxTotal {
			summary.SpendStats.MaxTotal = customer.TotalSpend
		}
	}

	if summary.TotalCustomers > 0 {
		summary.RetentionRate = utils.RoundWithTwoDecimalPlace(float64(returning) / float64(summary.TotalCustomers) * 100)
		summary.VisitStats.SingleVisitShare = utils.RoundWithTwoDecimalPlace(
			float64(summary.VisitStats.SingleVisitCount) / float64(summary.TotalCustomers) * 100)
	}

	sort.Float64s(visits)
	summary.VisitStats.Mean = utils.RoundWithTwoDecimalPlace(utils.Mean(visits))
	summary.VisitStats.Median = utils.Median(visits)
	summary.SpendStats.MeanPerVisit = utils.RoundWithTwoDecimalPlace(utils.Mean(avgSpends))
	summary.SpendStats.MeanPerCustomer = utils.RoundWithTwoDecimalPlace(utils.Mean(totalSpends))

	return summary
}

// FilterCustomers aplica el contrato de filtrado (intersección de segmentos,
// estilistas y días mínimos) y ordena descendente por días sin visita, que
// es el orden de la lista de contacto.
func (s *service) FilterCustomers(customers []*domain.CustomerProfile, filters *domain.CustomerFilters) []*domain.CustomerProfile {
	filtered := make([]*domain.CustomerProfile, 0)
	for _, customer := range customers {
		if filters.Matches(customer) {
			filtered = append(filtered, customer)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].DaysSinceVisit > filtered[j].DaysSinceVisit
	})

	return filtered
}

// TopCustomers devuelve los clientes más frecuentes, opcionalmente de un
// solo estilista (stylist vacío = todo el salón).
func (s *service) TopCustomers(customers []*domain.CustomerProfile, stylist string, limit int) []*domain.CustomerProfile {
	top := make([]*domain.CustomerProfile, 0)
	for _, customer := range customers {
		if stylist == "" || customer.StylistGroup == stylist {
			top = append(top, customer)
		}
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].VisitCount > top[j].VisitCount
	})

	if limit > 0 && len(top) > limit {
		top = top[:limit]
	}

	return top
}
