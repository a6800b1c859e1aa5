package quote

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/printshop/internal/gangsheet"
)

func TestWriteText_ScreenPrint(t *testing.T) {
	svc := newTestService(t, nil)
	p, totals, err := svc.Price(context.Background(), Draft{
		Kind:       KindScreenPrint,
		TemplateID: "sp",
		ScreenPrint: []ScreenPrintLine{
			{GarmentID: "tee", Quantity: 24, ColorCount: 1, Locations: []string{"front"}},
		},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = WriteText(&buf, Quote{
		ID:           "q-1",
		CreatedAt:    time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		CustomerName: "Riverside FC",
		Notes:        "navy tees",
		Kind:         KindScreenPrint,
		TemplateID:   "sp",
		Pricing:      p,
		Totals:       totals,
	})
	require.NoError(t, err)

	body := buf.String()
	for _, expected := range []string{"Quote q-1", "Riverside FC", "2026-03-14 09:30", "8.50", "229.00", "Total:", "247.89", "Notes: navy tees"} {
		assert.Contains(t, body, expected)
	}
}

func TestWriteText_DTF(t *testing.T) {
	svc := newTestService(t, nil)
	p, totals, err := svc.Price(context.Background(), Draft{
		Kind:       KindDTF,
		TemplateID: "dtf",
		DTF:        &DTFOrder{Items: []gangsheet.LineItem{{ID: "logo", Width: 10, Height: 10, Quantity: 40}}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Quote{ID: "q-2", Kind: KindDTF, TemplateID: "dtf", Pricing: p, Totals: totals}))

	body := buf.String()
	assert.Contains(t, body, "22x120 in")
	assert.Contains(t, body, "54.99")
	assert.Contains(t, body, "109.98")
}
