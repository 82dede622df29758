// Package despensa expone el núcleo de inventario de alimentos como librería
// embebida: registro de alimentos, movimientos de entrada/salida con
// auditoría, backup/restauración del dataset completo y reporte de stock
// bajo. Sin red, sin CLI: el host (la capa de presentación) llama estas
// operaciones directamente.
package despensa

import (
	"github.com/spf13/afero"

	"github.com/jhoicas/despensa-core/internal/application/backup"
	"github.com/jhoicas/despensa-core/internal/application/report"
	"github.com/jhoicas/despensa-core/internal/application/stock"
	"github.com/jhoicas/despensa-core/internal/domain/repository"
	"github.com/jhoicas/despensa-core/internal/infrastructure/localstore"
	"github.com/jhoicas/despensa-core/internal/infrastructure/pdf"
	"github.com/jhoicas/despensa-core/pkg/config"
	"github.com/jhoicas/despensa-core/pkg/logger"
)

// App es el contexto de la aplicación: se construye una vez al arrancar el
// proceso y se pasa por referencia a quien lo necesite. No hay estado global;
// el repositorio dentro del App es el único escritor de las colecciones.
type App struct {
	Config *config.Config
	Log    *logger.Logger
	Repo   repository.RecordRepository

	Stock  *stock.UseCase
	Backup *backup.UseCase
	Report *report.UseCase
}

// Open carga la configuración (despensa.yaml opcional) y construye el App
// sobre el sistema de archivos real.
func Open() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return New(cfg, afero.NewOsFs())
}

// New construye el App con la configuración y el sistema de archivos dados
// (afero.NewMemMapFs en tests) y carga las colecciones desde el medio.
func New(cfg *config.Config, fs afero.Fs) (*App, error) {
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	store, err := localstore.NewFileStore(fs, cfg.Storage.Dir)
	if err != nil {
		return nil, err
	}
	repo := localstore.NewRecordRepository(store, log)
	if err := repo.Load(); err != nil {
		return nil, err
	}

	return &App{
		Config: cfg,
		Log:    log,
		Repo:   repo,
		Stock:  stock.NewUseCase(repo, log),
		Backup: backup.NewUseCase(repo, log),
		Report: report.NewUseCase(repo, pdf.NewMarotoReportGenerator(), cfg.Report.Title),
	}, nil
}
