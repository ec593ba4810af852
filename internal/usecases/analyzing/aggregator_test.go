package analyzing

import (
	"testing"
	"time"

	"github.com/blushsalon/retention-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalized(customer, group string, date time.Time, total float64, phone string) *domain.NormalizedRecord {
	return &domain.NormalizedRecord{
		Customer:   customer,
		Staff:      group,
		StaffGroup: group,
		Date:       date,
		Month:      date.Format("01-2006"),
		Total:      total,
		Phone:      phone,
	}
}

func TestAggregateCustomers(t *testing.T) {
	analyzedAt := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Acumula visitas, gasto y fechas extremas", func(t *testing.T) {
		records := []*domain.NormalizedRecord{
			normalized("Ana", "Jhon", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), 50, "999111222"),
			normalized("Ana", "Jhon", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), 70, ""),
			normalized("Ana", "Jhon", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), 30, "888000111"),
		}

		profiles := aggregateCustomers(records, analyzedAt)

		require.Len(t, profiles, 1)
		ana := profiles[0]
		assert.Equal(t, 3, ana.VisitCount)
		assert.Equal(t, 150.0, ana.TotalSpend)
		assert.Equal(t, 50.0, ana.AverageSpend)
		assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), ana.FirstVisit)
		assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), ana.LastVisit)
		assert.Equal(t, 30, ana.DaysSinceVisit)
		// Se conserva el primer teléfono visto
		assert.Equal(t, "999111222", ana.Phone)
	})

	t.Run("La moda de estilistas decide el grupo del cliente", func(t *testing.T) {
		records := []*domain.NormalizedRecord{
			normalized("Rosa", "Jhon", time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), 50, ""),
			normalized("Rosa", "Yuri", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), 50, ""),
			normalized("Rosa", "Yuri", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), 50, ""),
		}

		profiles := aggregateCustomers(records, analyzedAt)

		require.Len(t, profiles, 1)
		assert.Equal(t, "Yuri", profiles[0].StylistGroup)
	})

	t.Run("En empate gana el grupo visto primero", func(t *testing.T) {
		records := []*domain.NormalizedRecord{
			normalized("Luz", "Susy", time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), 50, ""),
			normalized("Luz", "Jhon", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), 50, ""),
		}

		profiles := aggregateCustomers(records, analyzedAt)

		require.Len(t, profiles, 1)
		assert.Equal(t, "Susy", profiles[0].StylistGroup)
	})

	t.Run("La salida queda ordenada alfabéticamente", func(t *testing.T) {
		records := []*domain.NormalizedRecord{
			normalized("Zoila", "Jhon", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 50, ""),
			normalized("Ana", "Jhon", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 50, ""),
			normalized("Carmen", "Jhon", time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), 50, ""),
		}

		profiles := aggregateCustomers(records, analyzedAt)

		require.Len(t, profiles, 3)
		assert.Equal(t, "Ana", profiles[0].Name)
		assert.Equal(t, "Carmen", profiles[1].Name)
		assert.Equal(t, "Zoila", profiles[2].Name)
	})
}
