package pdf_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despensa-core/internal/application/report"
	"github.com/jhoicas/despensa-core/internal/domain/entity"
	"github.com/jhoicas/despensa-core/internal/infrastructure/pdf"
)

func TestGenerateLowStockPDF(t *testing.T) {
	gen := pdf.NewMarotoReportGenerator()

	items := []*entity.Item{
		{ID: "1", Name: "Arroz", Category: "Grãos", Quantity: 0, MinStock: 5, Location: "Prateleira A"},
		{ID: "2", Name: "Leite", Category: "Laticínios", Quantity: 2, MinStock: 2, Location: "Geladeira"},
	}

	data, err := gen.GenerateLowStockPDF(report.DefaultTitle, items, time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]), "el documento generado es un PDF")
}

func TestGenerateLowStockPDF_SinItems(t *testing.T) {
	gen := pdf.NewMarotoReportGenerator()

	data, err := gen.GenerateLowStockPDF(report.DefaultTitle, nil, time.Now())
	require.NoError(t, err, "una tabla vacía sigue siendo un documento válido")
	assert.NotEmpty(t, data)
}
