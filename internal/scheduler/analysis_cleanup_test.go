package scheduler

import (
	"testing"
	"time"

	"github.com/blushsalon/retention-api/infrastructure/repository/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAnalysisCleanupService_PurgeExpiredAnalyses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAnalysisRepository(ctrl)

	service := &AnalysisCleanupService{
		analysisRepo: mockRepo,
		config: AnalysisCleanupConfig{
			CronSchedule: "*/15 * * * *",
			AnalysisTTL:  2 * time.Hour,
			Enabled:      true,
		},
	}

	t.Run("Elimina análisis vencidos y registra marcas de tiempo", func(t *testing.T) {
		mockRepo.EXPECT().
			DeleteOlderThan(gomock.Any()).
			DoAndReturn(func(cutoff time.Time) int {
				// El corte debe quedar aproximadamente TTL atrás de ahora
				expected := time.Now().Add(-2 * time.Hour)
				assert.WithinDuration(t, expected, cutoff, time.Minute)
				return 3
			})
		mockRepo.EXPECT().Count().Return(1)

		err := service.PurgeExpiredAnalyses()

		assert.NoError(t, err)
		assert.False(t, service.purgeRunning)
		assert.False(t, service.lastPurgeStartedAt.IsZero())
		assert.False(t, service.lastPurgeEndedAt.IsZero())
	})

	t.Run("Sin elementos vencidos no consulta el conteo", func(t *testing.T) {
		mockRepo.EXPECT().
			DeleteOlderThan(gomock.Any()).
			Return(0)

		err := service.PurgeExpiredAnalyses()

		assert.NoError(t, err)
	})

	t.Run("Ignora ejecución cuando ya hay una limpieza en curso", func(t *testing.T) {
		service.purgeRunning = true
		defer func() { service.purgeRunning = false }()

		err := service.PurgeExpiredAnalyses()

		assert.NoError(t, err)
	})
}

func TestAnalysisCleanupService_GetStatus(t *testing.T) {
	service := &AnalysisCleanupService{
		config: AnalysisCleanupConfig{
			CronSchedule: "*/15 * * * *",
			AnalysisTTL:  2 * time.Hour,
			Enabled:      true,
		},
	}

	status := service.GetStatus()

	assert.Equal(t, true, status["enabled"])
	assert.Equal(t, "*/15 * * * *", status["cron"])
	assert.Equal(t, "2h0m0s", status["analysis_ttl"])
}
