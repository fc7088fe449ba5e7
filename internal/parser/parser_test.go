package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogflow/shelfscan/internal/model"
)

func TestParse_TabularReceipt(t *testing.T) {
	lines := []string{
		"Fresh Mart",
		"12/05/2024",
		"Milk 2 50.00 100.00",
		"Total: 100.00",
	}

	parsed := Parse(lines)

	assert.Equal(t, "Fresh Mart", parsed.Metadata.MerchantName)
	assert.Equal(t, "12/05/2024", parsed.Metadata.Date)
	assert.True(t, parsed.Metadata.HasTotal)
	assert.InDelta(t, 100.00, parsed.Metadata.TotalAmount, 0.001)
	assert.Equal(t, model.FormatTabular, parsed.Metadata.FormatType)

	require.Len(t, parsed.Candidates, 1)
	c := parsed.Candidates[0]
	assert.Equal(t, "Milk", c.Name)
	assert.InDelta(t, 2.0, c.Quantity, 0.001)
	assert.InDelta(t, 100.00, c.Price, 0.001)
	assert.InDelta(t, 0.9, c.Confidence.Name, 0.001)
	assert.InDelta(t, 0.9, c.Confidence.Price, 0.001)
	assert.InDelta(t, 0.9, c.Confidence.Quantity, 0.001)
	assert.Zero(t, c.Confidence.Brand)
}

func TestParse_HeuristicReceipt(t *testing.T) {
	lines := []string{
		"Corner Store",
		"Bread 45.50",
		"Eggs 12 144.00",
	}

	parsed := Parse(lines)

	assert.Equal(t, "Corner Store", parsed.Metadata.MerchantName)
	assert.Equal(t, model.FormatSimpleList, parsed.Metadata.FormatType)

	require.Len(t, parsed.Candidates, 2)

	bread := parsed.Candidates[0]
	assert.Equal(t, "Bread", bread.Name)
	assert.InDelta(t, 45.50, bread.Price, 0.001)
	assert.InDelta(t, 1.0, bread.Quantity, 0.001, "single number on the line is the price, quantity defaults to 1")
	assert.InDelta(t, 0.8, bread.Confidence.Name, 0.001)

	eggs := parsed.Candidates[1]
	assert.Equal(t, "Eggs", eggs.Name)
	assert.InDelta(t, 144.00, eggs.Price, 0.001)
	assert.InDelta(t, 12.0, eggs.Quantity, 0.001)
}

func TestParse_Deterministic(t *testing.T) {
	lines := []string{
		"Mega Bazaar",
		"Invoice #A-1092",
		"03/11/2024",
		"Surf Excel Detergent 1 230.00 230.00",
		"Green Tea 2 120.00 240.00",
		"Subtotal 470.00",
		"Tax 23.50",
		"Total 493.50",
	}

	first := Parse(lines)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Parse(lines), "parsing the same lines must always give the same result")
	}
}

func TestParse_Metadata(t *testing.T) {
	tests := []struct {
		name        string
		lines       []string
		wantInvoice string
		wantDate    string
		wantTotal   float64
		hasTotal    bool
	}{
		{
			name:        "invoice and date",
			lines:       []string{"Shop", "Invoice #INV-2024-001", "2024-05-12", "Milk 1 50.00 50.00"},
			wantInvoice: "INV-2024-001",
			wantDate:    "2024-05-12",
		},
		{
			name:      "total with currency noise",
			lines:     []string{"Shop", "Milk 1 50.00 50.00", "TOTAL Rs. 50.00"},
			wantTotal: 50.00,
			hasTotal:  true,
		},
		{
			name:  "malformed total line leaves total unset",
			lines: []string{"Shop", "Milk 1 50.00 50.00", "Total: ---"},
		},
		{
			name:      "subtotal is not the total",
			lines:     []string{"Shop", "Milk 1 50.00 50.00", "Subtotal 50.00", "Total 59.00"},
			wantTotal: 59.00,
			hasTotal:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := Parse(tt.lines)
			assert.Equal(t, tt.wantInvoice, parsed.Metadata.InvoiceNumber)
			assert.Equal(t, tt.wantDate, parsed.Metadata.Date)
			assert.Equal(t, tt.hasTotal, parsed.Metadata.HasTotal)
			if tt.hasTotal {
				assert.InDelta(t, tt.wantTotal, parsed.Metadata.TotalAmount, 0.001)
			}
		})
	}
}

func TestParse_SkipsNonProductLines(t *testing.T) {
	lines := []string{
		"Daily Needs",
		"----------------",
		"Item Qty Price Amount",
		"Rice 1 80.00 80.00",
		"Cashier: 04",
		"Payment Method: Cash",
		"Thank you for shopping!",
		"Change Due 20.00",
		"Total 80.00",
	}

	parsed := Parse(lines)

	require.Len(t, parsed.Candidates, 1)
	assert.Equal(t, "Rice", parsed.Candidates[0].Name)
	assert.True(t, parsed.Metadata.HasTotal)
}

func TestParse_DedupesRepeatedLines(t *testing.T) {
	lines := []string{
		"Shop",
		"Milk 2 50.00 100.00",
		"milk 2 50.00 100.00",
		"MILK 2 50.00 100.00",
		"Bread 1 45.00 45.00",
	}

	parsed := Parse(lines)

	require.Len(t, parsed.Candidates, 2)
	assert.Equal(t, "Milk", parsed.Candidates[0].Name, "first occurrence wins")
	assert.Equal(t, "Bread", parsed.Candidates[1].Name)
}

func TestParse_EmptyAndGarbage(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{name: "nil input", lines: nil},
		{name: "empty lines", lines: []string{"", "   ", "\t"}},
		{name: "separators only", lines: []string{"-----", "=====", "*****"}},
		{name: "numbers without names", lines: []string{"123 456", "99.99"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := Parse(tt.lines)
			assert.Empty(t, parsed.Candidates)
			assert.Equal(t, model.FormatUnknown, parsed.Metadata.FormatType)
		})
	}
}

func TestParse_MerchantWindow(t *testing.T) {
	// A digit-free line appearing late on the receipt is not the merchant.
	lines := []string{
		"Milk 2 50.00 100.00",
		"Bread 1 45.00 45.00",
		"Rice 1 80.00 80.00",
		"Soap 1 30.00 30.00",
		"Some Footer Text",
	}

	parsed := Parse(lines)
	assert.Empty(t, parsed.Metadata.MerchantName)
}

func TestParse_CleanedNameBumpsConfidence(t *testing.T) {
	// Trailing single-letter debris triggers cleaning and the 0.85 tier.
	parsed := Parse(dirtyHeuristicLines())

	require.Len(t, parsed.Candidates, 1)
	c := parsed.Candidates[0]
	assert.Equal(t, "Green Tea", c.Name)
	assert.InDelta(t, 0.85, c.Confidence.Name, 0.001)
}

func dirtyHeuristicLines() []string {
	return []string{"Shop", "Green Tea x 120.00"}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"  Milk  ", "Milk"},
		{"Milk..", "Milk"},
		{"Green   Tea", "Green Tea"},
		{"Green Tea x", "Green Tea"},
		{"*Bread*", "Bread"},
		{"", ""},
		{"A", "A"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanName(tt.raw), "CleanName(%q)", tt.raw)
	}
}
