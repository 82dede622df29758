// Package backup implementa la exportación e importación del dataset
// completo como snapshot JSON autodescriptivo (formato "1.0" de la app
// original: {epis, movements, dataExportacao, versao}).
package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/despensa-core/internal/application/dto"
	"github.com/jhoicas/despensa-core/internal/domain"
	"github.com/jhoicas/despensa-core/internal/domain/repository"
	"github.com/jhoicas/despensa-core/pkg/logger"
)

// FormatVersion versión del formato de snapshot.
const FormatVersion = "1.0"

// UseCase exporta y reemplaza las dos colecciones. La importación escribe el
// medio durable directamente y fuerza un Reload del repositorio para que
// ningún caller quede mirando colecciones viejas.
type UseCase struct {
	repo repository.RecordRepository
	log  *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.RecordRepository, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, log: log}
}

// Export produce el snapshot completo de ambas colecciones.
func (uc *UseCase) Export(now time.Time) (*dto.Backup, error) {
	items, err := uc.repo.ListItems()
	if err != nil {
		return nil, err
	}
	movements, err := uc.repo.ListMovements()
	if err != nil {
		return nil, err
	}
	return &dto.Backup{
		Epis:           items,
		Movements:      movements,
		DataExportacao: now,
		Versao:         FormatVersion,
	}, nil
}

// ExportJSON produce el snapshot como JSON indentado, el contenido exacto
// del archivo backup-epis-<fecha>.json.
func (uc *UseCase) ExportJSON(now time.Time) ([]byte, error) {
	b, err := uc.Export(now)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializar backup: %w", err)
	}
	return data, nil
}

// ParseBackup decodifica y valida la forma de un archivo de backup. Solo
// valida estructura (ambas colecciones presentes), no campo por campo.
func (uc *UseCase) ParseBackup(data []byte) (*dto.Backup, error) {
	var b dto.Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}
	if err := validate(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Preview devuelve cuántos registros reemplazaría importar el snapshot. La
// confirmación del usuario es responsabilidad del colaborador que llama.
func (uc *UseCase) Preview(b *dto.Backup) (dto.ImportPreview, error) {
	if err := validate(b); err != nil {
		return dto.ImportPreview{}, err
	}
	return dto.ImportPreview{Items: len(b.Epis), Movements: len(b.Movements)}, nil
}

// Import reemplaza ambas colecciones por las del snapshot (sobreescritura
// completa, no merge) y recarga el repositorio. Un snapshot sin alguna de
// las dos colecciones se rechaza sin cambio de estado.
func (uc *UseCase) Import(b *dto.Backup) error {
	if err := validate(b); err != nil {
		return err
	}
	if err := uc.repo.ReplaceAll(b.Epis, b.Movements); err != nil {
		return err
	}
	if err := uc.repo.Reload(); err != nil {
		return err
	}
	uc.log.Info().Int("items", len(b.Epis)).Int("movements", len(b.Movements)).
		Str("versao", b.Versao).Msg("backup importado")
	return nil
}

// validate exige ambas colecciones presentes (nil = clave ausente en el
// JSON; un slice vacío es válido) y sin elementos null: un null dentro del
// arreglo decodifica como puntero nil y no es un registro importable.
func validate(b *dto.Backup) error {
	if b == nil || b.Epis == nil || b.Movements == nil {
		return domain.ErrInvalidBackup
	}
	for _, it := range b.Epis {
		if it == nil {
			return domain.ErrInvalidBackup
		}
	}
	for _, m := range b.Movements {
		if m == nil {
			return domain.ErrInvalidBackup
		}
	}
	return nil
}

// BackupFilename convención de nombre del archivo exportado.
func BackupFilename(t time.Time) string {
	return fmt.Sprintf("backup-epis-%s.json", t.Format("2006-01-02"))
}
