package analyzing

import (
	"time"

	"github.com/pkg/errors"

	"github.com/blushsalon/retention-api/internal/domain"
	"github.com/blushsalon/retention-api/internal/usecases/messaging"
	"github.com/blushsalon/retention-api/internal/usecases/normalizing"
	"github.com/blushsalon/retention-api/internal/usecases/reporting"
	"github.com/blushsalon/retention-api/internal/usecases/segmenting"
	"github.com/blushsalon/retention-api/pkg/log"
	"github.com/blushsalon/retention-api/pkg/utils"
)

// ErrEmptyDataset es la falla estructural de una corrida sin filas útiles
// después del filtrado. No se devuelven resultados parciales.
var ErrEmptyDataset = errors.New("el dataset quedó vacío después del filtrado")

type service struct {
	normalizer normalizing.Normalizer
	engine     *segmenting.Engine
	generator  messaging.Generator
	reporter   reporting.Reporter
}

func NewService(
	normalizer normalizing.Normalizer,
	engine *segmenting.Engine,
	generator messaging.Generator,
	reporter reporting.Reporter,
) Analyzer {
	return &service{
		normalizer: normalizer,
		engine:     engine,
		generator:  generator,
		reporter:   reporter,
	}
}

// Analyze corre el pipeline completo. analyzedAt es el reloj de análisis
// inyectado: todos los "días sin visita" se calculan contra ese instante,
// así dos corridas con el mismo archivo y reloj son idénticas byte a byte.
func (s *service) Analyze(records []*domain.TransactionRecord, analyzedAt time.Time) (*domain.AnalysisResult, error) {
	normalized := s.normalizer.Normalize(records)
	if len(normalized.Records) == 0 {
		return nil, ErrEmptyDataset
	}

	customers := aggregateCustomers(normalized.Records, analyzedAt)

	for _, customer := range customers {
		customer.Segment = s.engine.Segment(customer.VisitCount, customer.DaysSinceVisit)

		message, err := s.generator.Generate(customer.Name, customer.StylistGroup, customer.DaysSinceVisit)
		if err != nil {
			return nil, errors.Wrapf(err, "error al generar el mensaje del cliente %s", customer.Name)
		}
		customer.Message = message
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "error al generar el ID de la corrida")
	}

	result := &domain.AnalysisResult{
		ID:             id,
		AnalyzedAt:     analyzedAt,
		CreatedAt:      time.Now(),
		Records:        normalized.Records,
		Customers:      customers,
		Stylists:       s.reporter.StylistMetrics(normalized.Records, customers),
		Crosstab:       s.reporter.Crosstab(customers),
		Summary:        s.reporter.Summary(customers),
		DroppedNoStaff: normalized.DroppedNoStaff,
		DroppedNoDate:  normalized.DroppedNoDate,
	}

	log.L.WithFields(log.Fields{
		"analysis_id":    result.ID,
		"filas":          len(normalized.Records),
		"clientes":       len(customers),
		"tasa_retencion": result.Summary.RetentionRate,
	}).Info("Análisis de retención completado")

	return result, nil
}
