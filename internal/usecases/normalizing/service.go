package normalizing

import (
	"strings"
	"time"

	"github.com/blushsalon/retention-api/internal/config"
	"github.com/blushsalon/retention-api/internal/domain"
	"github.com/blushsalon/retention-api/pkg/log"
)

// Normalizer convierte las filas crudas del archivo en NormalizedRecords
// listos para agregar. Los problemas por campo se resuelven acá adentro y
// nunca abortan la corrida: las filas sin empleado se descartan y las fechas
// faltantes se rellenan con la última fecha vista en el orden original.
type Normalizer interface {
	Normalize(records []*domain.TransactionRecord) *Result
}

// Result acompaña las filas normalizadas con los contadores de descarte,
// que el resumen de la corrida reporta tal cual.
type Result struct {
	Records        []*domain.NormalizedRecord
	DroppedNoStaff int
	DroppedNoDate  int
}

type service struct {
	grouper    *StaffGrouper
	classifier *ProductClassifier
}

func NewService(cfg config.Salon) Normalizer {
	return &service{
		grouper:    NewStaffGrouper(cfg),
		classifier: NewProductClassifier(cfg),
	}
}

// Normalize procesa las filas en su orden original. Las filas iniciales sin
// fecha resoluble (no hay fecha anterior para el forward-fill) se descartan
// en vez de inventarles una fecha cero.
func (s *service) Normalize(records []*domain.TransactionRecord) *Result {
	result := &Result{
		Records: make([]*domain.NormalizedRecord, 0, len(records)),
	}

	var lastDate *time.Time

	for _, record := range records {
		if strings.TrimSpace(record.Staff) == "" {
			result.DroppedNoStaff++
			continue
		}

		date := record.Date
		if date == nil {
			date = lastDate
		}
		if date == nil {
			result.DroppedNoDate++
			continue
		}
		lastDate = date

		result.Records = append(result.Records, &domain.NormalizedRecord{
			Customer:   strings.TrimSpace(record.Customer),
			Staff:      strings.TrimSpace(record.Staff),
			StaffGroup: s.grouper.Group(record.Staff),
			Date:       *date,
			Month:      date.Format("01-2006"),
			Item:       strings.TrimSpace(record.Item),
			IsProduct:  s.classifier.IsProduct(record.Item, record.ItemClass),
			Total:      record.Total,
			Phone:      strings.TrimSpace(record.Phone),
		})
	}

	if result.DroppedNoStaff > 0 || result.DroppedNoDate > 0 {
		log.L.WithFields(log.Fields{
			"sin_empleado": result.DroppedNoStaff,
			"sin_fecha":    result.DroppedNoDate,
		}).Warn("Filas descartadas durante la normalización")
	}

	return result
}
