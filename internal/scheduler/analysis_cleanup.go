// Package scheduler contiene los servicios de agendamiento de tareas de mantenimiento
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/blushsalon/retention-api/infrastructure/repository"
	"github.com/blushsalon/retention-api/internal/config"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

type AnalysisCleanupConfig struct {
	CronSchedule string
	AnalysisTTL  time.Duration
	Enabled      bool
}

// AnalysisCleanupService purga los análisis vencidos del repositorio en memoria
type AnalysisCleanupService struct {
	scheduler          *gocron.Scheduler
	analysisRepo       repository.AnalysisRepository
	config             AnalysisCleanupConfig
	purgeRunning       bool
	purgeMutex         sync.Mutex
	lastPurgeStartedAt time.Time
	lastPurgeEndedAt   time.Time
}

func NewAnalysisCleanupService(
	analysisRepo repository.AnalysisRepository,
	cfg *config.Config,
) *AnalysisCleanupService {
	cleanupConfig := AnalysisCleanupConfig{
		CronSchedule: cfg.Cleanup.CronSchedule, // Default: cada 15 minutos
		AnalysisTTL:  cfg.Cleanup.AnalysisTTL,  // Default: 2 horas
		Enabled:      cfg.Cleanup.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": cleanupConfig.CronSchedule,
		"analysis_ttl":  cleanupConfig.AnalysisTTL.String(),
	}).Info("Configuración del agendador de limpieza de análisis cargada")

	return &AnalysisCleanupService{
		scheduler:    scheduler,
		analysisRepo: analysisRepo,
		config:       cleanupConfig,
	}
}

func (s *AnalysisCleanupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de limpieza de análisis deshabilitado por configuración")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de limpieza de análisis")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.PurgeExpiredAnalyses(); err != nil {
			logrus.WithError(err).Error("Error en la limpieza de análisis vencidos")
		}
	})
	if err != nil {
		return fmt.Errorf("error al agendar la limpieza de análisis: %w", err)
	}

	// Ejecutar el cron en una goroutine separada
	s.scheduler.StartAsync()

	// Detener el cron cuando se cancele el contexto
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de limpieza de análisis")
		s.scheduler.Stop()
	}()

	return nil
}

// PurgeExpiredAnalyses elimina los análisis creados antes del TTL configurado
func (s *AnalysisCleanupService) PurgeExpiredAnalyses() error {
	s.purgeMutex.Lock()
	defer s.purgeMutex.Unlock()

	if s.purgeRunning {
		logrus.Warn("Limpieza de análisis ya está en ejecución")
		return nil
	}

	s.purgeRunning = true
	s.lastPurgeStartedAt = time.Now()
	defer func() {
		s.purgeRunning = false
		s.lastPurgeEndedAt = time.Now()
	}()

	cutoff := time.Now().Add(-s.config.AnalysisTTL)
	removed := s.analysisRepo.DeleteOlderThan(cutoff)

	if removed > 0 {
		logrus.WithFields(logrus.Fields{
			"eliminados": removed,
			"restantes":  s.analysisRepo.Count(),
			"cutoff":     cutoff.Format(time.RFC3339),
		}).Info("Limpieza de análisis vencidos concluida")
	} else {
		logrus.Debug("Limpieza de análisis concluida sin elementos vencidos")
	}

	return nil
}

// TriggerManualPurge inicia manualmente una limpieza de análisis vencidos
func (s *AnalysisCleanupService) TriggerManualPurge() {
	s.purgeMutex.Lock()
	if s.purgeRunning {
		s.purgeMutex.Unlock()
		logrus.Info("Limpieza de análisis ya en curso, ignorando solicitud manual")
		return
	}
	s.purgeMutex.Unlock()

	logrus.Info("Iniciando limpieza manual de análisis vencidos")
	go s.PurgeExpiredAnalyses()
}

// GetStatus retorna el estado actual del agendador
func (s *AnalysisCleanupService) GetStatus() map[string]any {
	return map[string]any{
		"enabled":               s.config.Enabled,
		"cron":                  s.config.CronSchedule,
		"analysis_ttl":          s.config.AnalysisTTL.String(),
		"last_purge_started_at": s.lastPurgeStartedAt,
		"last_purge_ended_at":   s.lastPurgeEndedAt,
	}
}
