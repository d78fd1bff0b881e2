package whatsapp

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		currency string
		want     string
	}{
		{name: "ars grouping", amount: decimal.NewFromInt(150000), currency: "ARS", want: "$ 150.000"},
		{name: "ars millions", amount: decimal.NewFromInt(1250000), currency: "ARS", want: "$ 1.250.000"},
		{name: "small amount no separator", amount: decimal.NewFromInt(900), currency: "ARS", want: "$ 900"},
		{name: "rounds decimals away", amount: decimal.NewFromFloat(150000.40), currency: "ARS", want: "$ 150.000"},
		{name: "empty currency defaults to peso sign", amount: decimal.NewFromInt(500), currency: "", want: "$ 500"},
		{name: "other currency uses code", amount: decimal.NewFromInt(1200), currency: "USD", want: "USD 1.200"},
		{name: "negative amount", amount: decimal.NewFromInt(-1500), currency: "ARS", want: "$ -1.500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAmount(tt.amount, tt.currency)
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestReminderMessage(t *testing.T) {
	msg := ReminderMessage("Don Mario", decimal.NewFromInt(150000), "ARS")

	if !strings.Contains(msg, "Don Mario") {
		t.Fatalf("expected client name in message: %s", msg)
	}
	if !strings.Contains(msg, "$ 150.000") {
		t.Fatalf("expected formatted amount in message: %s", msg)
	}
	if !strings.Contains(msg, "LED1") {
		t.Fatalf("expected business name in message: %s", msg)
	}
}
