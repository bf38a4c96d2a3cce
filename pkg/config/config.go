package config

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo .env).
type Config struct {
	App      AppConfig
	Log      LogConfig
	Snapshot SnapshotConfig
	Scan     ScanConfig
	Money    MoneyConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig configuración del logger.
type LogConfig struct {
	Level string // debug, info, warn, error
}

// SnapshotConfig persistencia del snapshot.
type SnapshotConfig struct {
	Path string // archivo JSON donde se guarda/restaura el estado completo
}

// ScanConfig temporizador del escaneo de consistencia (stock bajo, vencidos).
type ScanConfig struct {
	IntervalSeconds int
}

// MoneyConfig moneda y locale para formateo en la frontera de presentación.
type MoneyConfig struct {
	Currency string // ISO 4217, ej. BRL
	Locale   string // BCP 47, ej. pt-BR
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// archivo .env). Las env vars tienen prioridad. Nombres esperados: APP_ENV,
// LOG_LEVEL, SNAPSHOT_PATH, SCAN_INTERVAL_SECONDS, CURRENCY, LOCALE.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración .env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "negocio-core"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Snapshot: SnapshotConfig{
			Path: getString(v, "SNAPSHOT_PATH", "negocio-snapshot.json"),
		},
		Scan: ScanConfig{
			IntervalSeconds: getInt(v, "SCAN_INTERVAL_SECONDS", 60),
		},
		Money: MoneyConfig{
			Currency: getString(v, "CURRENCY", "BRL"),
			Locale:   getString(v, "LOCALE", "pt-BR"),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
