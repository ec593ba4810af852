// Package repository contiene el almacenamiento de corridas de análisis.
// No hay base de datos: cada corrida vive en memoria bajo su ID corto hasta
// que vence su TTL y la purga la elimina.
package repository

import (
	"sync"
	"time"

	"github.com/blushsalon/retention-api/internal/domain"
)

//go:generate mockgen -source=analysis.go -destination=mocks/analysis_mock.go -package=mocks

// AnalysisRepository guarda y recupera resultados de análisis por ID.
// GetByID devuelve nil sin error cuando la corrida no existe o ya venció.
type AnalysisRepository interface {
	Save(result *domain.AnalysisResult) error
	GetByID(id string) (*domain.AnalysisResult, error)
	DeleteOlderThan(cutoff time.Time) int
	Count() int
}

type memoryAnalysisRepository struct {
	mu   sync.RWMutex
	byID map[string]*domain.AnalysisResult
}

func NewAnalysisRepository() AnalysisRepository {
	return &memoryAnalysisRepository{
		byID: make(map[string]*domain.AnalysisResult),
	}
}

func (r *memoryAnalysisRepository) Save(result *domain.AnalysisResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[result.ID] = result
	return nil
}

func (r *memoryAnalysisRepository) GetByID(id string) (*domain.AnalysisResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byID[id], nil
}

// DeleteOlderThan elimina las corridas creadas antes del corte y devuelve
// cuántas se purgaron.
func (r *memoryAnalysisRepository) DeleteOlderThan(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, result := range r.byID {
		if result.CreatedAt.Before(cutoff) {
			delete(r.byID, id)
			deleted++
		}
	}

	return deleted
}

func (r *memoryAnalysisRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID)
}
