package analyzing

import (
	"time"

	"github.com/blushsalon/retention-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/analyzer_mock.go -package=mocks

// Analyzer corre el pipeline completo sobre las filas crudas de un archivo:
// normalización, agregación por cliente, segmentación, mensajes y métricas
// por estilista. Una corrida es síncrona y trabaja sobre su propia copia de
// los datos; el resultado es inmutable.
type Analyzer interface {
	Analyze(records []*domain.TransactionRecord, analyzedAt time.Time) (*domain.AnalysisResult, error)
}
