package normalizing

import (
	"testing"
	"time"

	"github.com/blushsalon/retention-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestService_Normalize(t *testing.T) {
	normalizer := NewService(testSalonConfig())

	t.Run("Rellena fechas faltantes con la última vista", func(t *testing.T) {
		records := []*domain.TransactionRecord{
			{Customer: "Ana", Staff: "Jhon", Date: datePtr(2026, 3, 10), Item: "CORTE", Total: 50},
			{Customer: "Ana", Staff: "Jhon", Item: "CEPILLADO", Total: 30},
			{Customer: "Rosa", Staff: "Yuri", Date: datePtr(2026, 3, 12), Item: "TINTE", Total: 120},
		}

		result := normalizer.Normalize(records)

		require.Len(t, result.Records, 3)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), result.Records[1].Date)
		assert.Equal(t, "03-2026", result.Records[1].Month)
		assert.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), result.Records[2].Date)
		assert.Zero(t, result.DroppedNoDate)
		assert.Zero(t, result.DroppedNoStaff)
	})

	t.Run("Descarta filas sin empleado y las cuenta", func(t *testing.T) {
		records := []*domain.TransactionRecord{
			{Customer: "Ana", Staff: "   ", Date: datePtr(2026, 3, 10), Total: 50},
			{Customer: "Rosa", Staff: "Susy", Date: datePtr(2026, 3, 11), Total: 80},
		}

		result := normalizer.Normalize(records)

		require.Len(t, result.Records, 1)
		assert.Equal(t, "Rosa", result.Records[0].Customer)
		assert.Equal(t, 1, result.DroppedNoStaff)
	})

	t.Run("Descarta filas iniciales sin fecha resoluble", func(t *testing.T) {
		records := []*domain.TransactionRecord{
			{Customer: "Ana", Staff: "Jhon", Total: 50},
			{Customer: "Rosa", Staff: "Yuri", Total: 30},
			{Customer: "Luz", Staff: "Susy", Date: datePtr(2026, 3, 15), Total: 90},
		}

		result := normalizer.Normalize(records)

		require.Len(t, result.Records, 1)
		assert.Equal(t, "Luz", result.Records[0].Customer)
		assert.Equal(t, 2, result.DroppedNoDate)
	})

	t.Run("Enriquece con grupo de estilista y clasificación de producto", func(t *testing.T) {
		records := []*domain.TransactionRecord{
			{Customer: "  Ana Torres ", Staff: "Julio Cesar", Date: datePtr(2026, 3, 10), Item: " SHAMPOO REDKEN ", Total: 95, Phone: " 999888777 "},
		}

		result := normalizer.Normalize(records)

		require.Len(t, result.Records, 1)
		record := result.Records[0]
		assert.Equal(t, "Ana Torres", record.Customer)
		assert.Equal(t, "Julio Luna", record.StaffGroup)
		assert.Equal(t, "SHAMPOO REDKEN", record.Item)
		assert.True(t, record.IsProduct)
		assert.Equal(t, "999888777", record.Phone)
	})

	t.Run("Dataset vacío produce resultado vacío", func(t *testing.T) {
		result := normalizer.Normalize(nil)

		assert.Empty(t, result.Records)
		assert.Zero(t, result.DroppedNoStaff)
		assert.Zero(t, result.DroppedNoDate)
	})
}
