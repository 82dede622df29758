package config

import (
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la librería (lectura vía Viper desde un
// archivo opcional). No se leen variables de entorno: la superficie es una
// librería embebida y el host decide dónde viven los datos.
type Config struct {
	App     AppConfig
	Log     LogConfig
	Storage StorageConfig
	Report  ReportConfig
}

// AppConfig configuración general.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel del logger estructurado.
type LogConfig struct {
	Level string // trace, debug, info, warn, error
}

// StorageConfig ubicación del medio durable (un archivo JSON por clave).
type StorageConfig struct {
	Dir string
}

// ReportConfig textos del reporte de stock bajo.
type ReportConfig struct {
	Title string
}

// Load lee la configuración desde despensa.yaml (en . o ./config) si existe;
// si no, aplica los valores por defecto. Nunca falla por archivo ausente.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("despensa")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Archivo ausente: defaults. Archivo presente pero malformado: error.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("app.env"),
			Name: v.GetString("app.name"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
		Storage: StorageConfig{
			Dir: v.GetString("storage.dir"),
		},
		Report: ReportConfig{
			Title: v.GetString("report.title"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.name", "despensa-core")
	v.SetDefault("log.level", "info")
	v.SetDefault("storage.dir", "./data")
	v.SetDefault("report.title", "RELATÓRIO DE ESTOQUE BAIXO")
}
