// Package report deriva las vistas agregadas del inventario: cantidad total,
// alimentos en stock bajo y el reporte descargable. Solo lectura, sin estado
// propio; todo se recalcula on demand, nunca se persisten agregados.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/despensa-core/internal/domain/entity"
	"github.com/jhoicas/despensa-core/internal/domain/repository"
)

// DefaultTitle título del reporte (mismo texto que la app original).
const DefaultTitle = "RELATÓRIO DE ESTOQUE BAIXO"

// UseCase vistas derivadas del inventario.
type UseCase struct {
	repo   repository.RecordRepository
	pdfGen LowStockPDFGenerator
	title  string
}

// NewUseCase construye el caso de uso. pdfGen puede ser nil si el host no
// necesita la salida PDF; title vacío usa DefaultTitle.
func NewUseCase(repo repository.RecordRepository, pdfGen LowStockPDFGenerator, title string) *UseCase {
	if title == "" {
		title = DefaultTitle
	}
	return &UseCase{repo: repo, pdfGen: pdfGen, title: title}
}

// TotalQuantity suma las existencias de todos los alimentos.
func (uc *UseCase) TotalQuantity() (int, error) {
	items, err := uc.repo.ListItems()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total, nil
}

// LowStockItems alimentos con cantidad menor o igual a su mínimo, en el
// orden de la colección.
func (uc *UseCase) LowStockItems() ([]*entity.Item, error) {
	items, err := uc.repo.ListItems()
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Item, 0)
	for _, it := range items {
		if it.IsLowStock() {
			out = append(out, it)
		}
	}
	return out, nil
}

// LowStockCount cantidad de alimentos en stock bajo.
func (uc *UseCase) LowStockCount() (int, error) {
	items, err := uc.LowStockItems()
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// CriticalItems alimentos con existencia en cero.
func (uc *UseCase) CriticalItems() ([]*entity.Item, error) {
	items, err := uc.repo.ListItems()
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Item, 0)
	for _, it := range items {
		if it.IsCritical() {
			out = append(out, it)
		}
	}
	return out, nil
}

// LowStockText genera el reporte de stock bajo en texto plano (formato del
// archivo relatorio-<fecha>.txt original). Devuelve cadena vacía si no hay
// alimentos en stock bajo: no se genera archivo sin contenido.
func (uc *UseCase) LowStockText(now time.Time) (string, error) {
	items, err := uc.LowStockItems()
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n%s\n\n", uc.title, now.Format("02/01/2006 15:04:05"), strings.Repeat("=", 70))
	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, it.Name)
		fmt.Fprintf(&b, "   Estoque: %d (mínimo: %d)\n", it.Quantity, it.MinStock)
		fmt.Fprintf(&b, "   Categoria: %s\n", it.Category)
		fmt.Fprintf(&b, "   Localização: %s\n\n", it.Location)
	}
	fmt.Fprintf(&b, "Total: %d Alimentos\n", len(items))
	return b.String(), nil
}

// LowStockPDF genera el mismo reporte como PDF vía el puerto inyectado.
func (uc *UseCase) LowStockPDF(now time.Time) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, fmt.Errorf("generador PDF no configurado")
	}
	items, err := uc.LowStockItems()
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateLowStockPDF(uc.title, items, now)
}

// ReportFilename convención de nombre del reporte de texto.
func ReportFilename(t time.Time) string {
	return fmt.Sprintf("relatorio-%s.txt", t.Format("2006-01-02"))
}
