package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Salon     Salon     `mapstructure:",squash"`
	Retention Retention `mapstructure:",squash"`
	Dataset   Dataset   `mapstructure:",squash"`
	Cleanup   Cleanup   `mapstructure:",squash"`
	Messages  Messages  `mapstructure:"-"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Salon describe la estructura del equipo y las reglas de clasificación de
// items. Son datos del negocio, no lógica: se pueden reemplazar por variables
// de entorno sin tocar el orden de clasificación (principal → exactos →
// administración → grupo comodín).
type Salon struct {
	PrincipalNames []string `mapstructure:"salon_principal_names"`
	PrincipalGroup string   `mapstructure:"salon_principal_group"`
	TeamNames      []string `mapstructure:"salon_team_names"`
	AdminNames     []string `mapstructure:"salon_admin_names"`
	AdminGroup     string   `mapstructure:"salon_admin_group"`
	FallbackGroup  string   `mapstructure:"salon_fallback_group"`
	DisplayOrder   []string `mapstructure:"salon_display_order"`

	ProductClassMarker string   `mapstructure:"salon_product_class_marker"`
	ProductKeywords    []string `mapstructure:"salon_product_keywords"`
}

// Retention reúne los umbrales del análisis. La ventana de cliente "activo"
// es también el corte Nuevo/Perdido y Regular/En Riesgo de la tabla de
// segmentación.
type Retention struct {
	ActiveWindowDays     int `mapstructure:"retention_active_window_days"`
	OccasionalMaxDays    int `mapstructure:"retention_occasional_max_days"`
	VIPMinVisits         int `mapstructure:"retention_vip_min_visits"`
	TopCustomersLimit    int `mapstructure:"retention_top_customers_limit"`
	DefaultMinExportDays int `mapstructure:"retention_default_min_export_days"`
}

// Dataset describe el formato del archivo que exporta el sistema de caja.
type Dataset struct {
	SheetName    string `mapstructure:"dataset_sheet_name"`
	HeaderOffset int    `mapstructure:"dataset_header_offset"` // filas de metadata antes del encabezado
}

// Cleanup controla la purga de corridas vencidas del repositorio en memoria.
type Cleanup struct {
	CronSchedule string        `mapstructure:"cleanup_cron"`
	AnalysisTTL  time.Duration `mapstructure:"cleanup_analysis_ttl"`
	Enabled      bool          `mapstructure:"cleanup_enabled"`
}

// Messages se define en messages.go; las plantillas se cargan aparte porque
// son texto multilínea que no entra bien en variables de entorno planas.

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("LOG_LEVEL", "debug")

	// Equipo del salón: los nombres del principal y de administración se
	// comparan por substring, los del equipo diario por igualdad exacta.
	viper.SetDefault("SALON_PRINCIPAL_NAMES", "Julio Luna,Julio,Julio Cesar")
	viper.SetDefault("SALON_PRINCIPAL_GROUP", "Julio Luna")
	viper.SetDefault("SALON_TEAM_NAMES", "Jhon,Yuri,Susy")
	viper.SetDefault("SALON_ADMIN_NAMES", "Vero,Veronica")
	viper.SetDefault("SALON_ADMIN_GROUP", "Vero")
	viper.SetDefault("SALON_FALLBACK_GROUP", "Otros")
	viper.SetDefault("SALON_DISPLAY_ORDER", "Julio Luna,Jhon,Yuri,Susy,Vero,Otros")

	viper.SetDefault("SALON_PRODUCT_CLASS_MARKER", "PRODUCTO")
	viper.SetDefault("SALON_PRODUCT_KEYWORDS",
		"MASCARILLA,SHAMPOO,SHAMPO,ACONDICIONADOR,"+
			"CREMA,SERUM,AMPOLLA,SPRAY,GEL,"+
			"LOTION,REDKEN,LOREAL,TIGI,KERASTASE,"+
			"X250ML,X300ML,X500ML,ML,GR,"+
			"BED HEAD,ALL SOFT,FRIZZ DISMISS")

	viper.SetDefault("RETENTION_ACTIVE_WINDOW_DAYS", 60)
	viper.SetDefault("RETENTION_OCCASIONAL_MAX_DAYS", 90)
	viper.SetDefault("RETENTION_VIP_MIN_VISITS", 10)
	viper.SetDefault("RETENTION_TOP_CUSTOMERS_LIMIT", 5)
	viper.SetDefault("RETENTION_DEFAULT_MIN_EXPORT_DAYS", 30)

	viper.SetDefault("DATASET_SHEET_NAME", "Hoja1")
	viper.SetDefault("DATASET_HEADER_OFFSET", 9)

	viper.SetDefault("CLEANUP_CRON", "*/15 * * * *") // cada 15 minutos
	viper.SetDefault("CLEANUP_ANALYSIS_TTL", "2h")
	viper.SetDefault("CLEANUP_ENABLED", true)
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variables cargadas por godotenv (viper no pudo leer .env):", err)
	} else {
		logrus.Info("Archivo .env leído por viper con éxito")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Messages = DefaultMessages()

	return config, nil
}

// Función auxiliar para cargar el archivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("No se pudo obtener el directorio actual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Archivo .env cargado con éxito de:", location)
			return
		}
	}

	logrus.Warn("No se pudo cargar el archivo .env de ninguna ubicación conocida")
}
