package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/blushsalon/retention-api/infrastructure/repository"
	"github.com/blushsalon/retention-api/infrastructure/spreadsheet"
	"github.com/blushsalon/retention-api/internal/api"
	"github.com/blushsalon/retention-api/internal/api/handler"
	"github.com/blushsalon/retention-api/internal/config"
	"github.com/blushsalon/retention-api/internal/scheduler"
	"github.com/blushsalon/retention-api/internal/usecases/analyzing"
	"github.com/blushsalon/retention-api/internal/usecases/messaging"
	"github.com/blushsalon/retention-api/internal/usecases/normalizing"
	"github.com/blushsalon/retention-api/internal/usecases/reporting"
	"github.com/blushsalon/retention-api/internal/usecases/segmenting"
	"github.com/sirupsen/logrus"
)

func main() {
	// Inicializa la configuración de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define el nivel de log según la configuración
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nivel de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nivel de log configurado en: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	analysisRepo := repository.NewAnalysisRepository()

	normalizer := normalizing.NewService(cfg.Salon)
	engine := segmenting.NewEngine(cfg.Retention)

	generator, err := messaging.NewGenerator(cfg.Messages, cfg.Retention)
	if err != nil {
		logrus.WithError(err).Fatal("Error al compilar las plantillas de mensajes")
	}

	reporter := reporting.NewService(cfg.Salon, cfg.Retention)
	analyzer := analyzing.NewService(normalizer, engine, generator, reporter)

	reader := spreadsheet.NewReader(cfg.Dataset)
	writer := spreadsheet.NewWriter()

	// Inicializa el agendador de limpieza de análisis vencidos
	cleanupService := scheduler.NewAnalysisCleanupService(analysisRepo, cfg)
	if err := cleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Error al iniciar el agendador de limpieza de análisis")
	} else {
		logrus.Info("Agendador de limpieza de análisis iniciado con éxito")
	}

	analysisServices := handler.AnalysisServices{
		Reader:     reader,
		Analyzer:   analyzer,
		Repository: analysisRepo,
		Reporter:   reporter,
		Retention:  cfg.Retention,
	}

	exportServices := handler.ExportServices{
		Analysis: analysisServices,
		Writer:   writer,
	}

	server, err := api.New(cfg, analysisServices, exportServices, cleanupService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura el formato y comportamiento de los logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
