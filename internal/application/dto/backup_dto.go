package dto

import (
	"time"

	"github.com/jhoicas/despensa-core/internal/domain/entity"
)

// Backup snapshot completo de ambas colecciones más metadatos. Los tags JSON
// son el formato de archivo de la app original (versión "1.0"); un backup
// generado aquí se importa allá y viceversa.
//
// Epis o Movements en nil significa clave ausente en el archivo (backup
// inválido); un slice vacío es una colección presente y vacía, válida.
type Backup struct {
	Epis           []*entity.Item     `json:"epis"`
	Movements      []*entity.Movement `json:"movements"`
	DataExportacao time.Time          `json:"dataExportacao"`
	Versao         string             `json:"versao"`
}

// ImportPreview conteo previo a la confirmación del reemplazo. El core no
// pregunta: la confirmación es responsabilidad del colaborador que importa.
type ImportPreview struct {
	Items     int
	Movements int
}
