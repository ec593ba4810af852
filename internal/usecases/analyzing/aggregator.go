package analyzing

import (
	"sort"
	"time"

	"github.com/blushsalon/retention-api/internal/domain"
	"github.com/blushsalon/retention-api/pkg/utils"
)

// customerAccumulator acumula el fold de un cliente en el orden original de
// las filas: fechas extremas, conteo, gasto, el primer teléfono visto y la
// frecuencia de cada grupo de estilista para calcular la moda.
type customerAccumulator struct {
	name        string
	firstVisit  time.Time
	lastVisit   time.Time
	visitCount  int
	totalSpend  float64
	phone       string
	staffCounts map[string]int
	staffOrder  []string
}

func (a *customerAccumulator) add(record *domain.NormalizedRecord) {
	if a.visitCount == 0 {
		a.firstVisit = record.Date
		a.lastVisit = record.Date
		a.phone = record.Phone
		a.staffCounts = make(map[string]int)
	}

	if record.Date.Before(a.firstVisit) {
		a.firstVisit = record.Date
	}
	if record.Date.After(a.lastVisit) {
		a.lastVisit = record.Date
	}

	a.visitCount++
	a.totalSpend += record.Total

	if _, seen := a.staffCounts[record.StaffGroup]; !seen {
		a.staffOrder = append(a.staffOrder, record.StaffGroup)
	}
	a.staffCounts[record.StaffGroup]++
}

// dominantStaff devuelve la moda de los grupos de estilista del cliente.
// En empate gana el primer grupo encontrado en el orden de las filas.
func (a *customerAccumulator) dominantStaff() string {
	best := ""
	bestCount := 0
	for _, group := range a.staffOrder {
		if a.staffCounts[group] > bestCount {
			best = group
			bestCount = a.staffCounts[group]
		}
	}
	return best
}

// aggregateCustomers agrupa las filas normalizadas por cliente y deriva su
// perfil. El orden de salida es alfabético por nombre para que corridas
// idénticas produzcan tablas idénticas.
func aggregateCustomers(records []*domain.NormalizedRecord, analyzedAt time.Time) []*domain.CustomerProfile {
	accumulators := make(map[string]*customerAccumulator)
	order := make([]string, 0)

	for _, record := range records {
		acc, ok := accumulators[record.Customer]
		if !ok {
			acc = &customerAccumulator{name: record.Customer}
			accumulators[record.Customer] = acc
			order = append(order, record.Customer)
		}
		acc.add(record)
	}

	profiles := make([]*domain.CustomerProfile, 0, len(order))
	for _, name := range order {
		acc := accumulators[name]

		profiles = append(profiles, &domain.CustomerProfile{
			Name:           acc.name,
			Phone:          acc.phone,
			FirstVisit:     acc.firstVisit,
			LastVisit:      acc.lastVisit,
			VisitCount:     acc.visitCount,
			TotalSpend:     acc.totalSpend,
			AverageSpend:   acc.totalSpend / float64(acc.visitCount),
			DaysSinceVisit: utils.DaysBetween(acc.lastVisit, analyzedAt),
			StylistGroup:   acc.dominantStaff(),
		})
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})

	return profiles
}
