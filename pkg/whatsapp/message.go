/**
 * @description
 * Reminder message template and es-AR currency formatting. Formatting
 * here is purely presentational; billing computations never use it.
 */
package whatsapp

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ReminderMessage builds the Spanish reminder text sent to a client.
func ReminderMessage(clientName string, amount decimal.Decimal, currency string) string {
	return fmt.Sprintf(
		"Hola %s, ¿cómo va? Te escribimos de LED1 para recordarte el abono de este mes: %s. Podés responder a este WhatsApp ante cualquier duda. ¡Gracias!",
		clientName,
		FormatAmount(amount, currency),
	)
}

// FormatAmount renders an amount the way the dashboard shows ARS
// figures: no decimal places, dots as thousands separators.
func FormatAmount(amount decimal.Decimal, currency string) string {
	rounded := amount.Round(0)
	digits := rounded.Abs().String()

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}

	symbol := currency + " "
	if currency == "" || currency == "ARS" {
		symbol = "$ "
	}
	return symbol + sign + b.String()
}
