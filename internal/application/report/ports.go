package report

import (
	"time"

	"github.com/jhoicas/despensa-core/internal/domain/entity"
)

// LowStockPDFGenerator puerto para la representación PDF del reporte de
// stock bajo (implementación en infrastructure/pdf con Maroto).
type LowStockPDFGenerator interface {
	GenerateLowStockPDF(title string, items []*entity.Item, now time.Time) ([]byte, error)
}
