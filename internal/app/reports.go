/**
 * @description
 * Reporting queries: expected charges over the coming week and the
 * monthly collected-vs-expected summary shown on the reports page.
 */
package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ferchoitu/led1-billing/internal/billing"
)

// UpcomingCharge is one expected charge in the next seven days.
type UpcomingCharge struct {
	ClientID     string          `json:"client_id"`
	Name         string          `json:"name"`
	BusinessName *string         `json:"business_name,omitempty"`
	PhoneE164    string          `json:"phone_e164"`
	BillingDay   int             `json:"billing_day"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	ChargeDate   billing.Date    `json:"charge_date"`
}

// MonthlyReport summarizes one billing period.
type MonthlyReport struct {
	Period          billing.Period  `json:"period"`
	ExpectedAmount  decimal.Decimal `json:"expected_amount"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
	ExpensesAmount  decimal.Decimal `json:"expenses_amount"`
	NetAmount       decimal.Decimal `json:"net_amount"`
}

// UpcomingCharges lists active clients whose billing day falls within
// the next seven days, with the concrete date each charge lands on.
func (s *Service) UpcomingCharges(ctx context.Context) ([]UpcomingCharge, error) {
	now := s.now().In(s.cal.Location())

	// Billing days are capped at 28, so a day number either exists in
	// the window or belongs to a later date; day->date is unambiguous.
	dateByDay := map[int]billing.Date{}
	days := make([]int, 0, 7)
	for i := 1; i <= 7; i++ {
		d := now.AddDate(0, 0, i)
		dateByDay[d.Day()] = billing.Date{Year: d.Year(), Month: int(d.Month()), Day: d.Day()}
		days = append(days, d.Day())
	}

	clients, err := s.clients.ListActiveClientsByBillingDays(ctx, days)
	if err != nil {
		return nil, err
	}

	charges := []UpcomingCharge{}
	for _, c := range clients {
		chargeDate, ok := dateByDay[c.BillingDay]
		if !ok {
			continue
		}
		if c.EndDate != nil && billing.DateOf(*c.EndDate).Before(chargeDate) {
			continue
		}
		charges = append(charges, UpcomingCharge{
			ClientID:     c.ID,
			Name:         c.Name,
			BusinessName: c.BusinessName,
			PhoneE164:    c.PhoneE164,
			BillingDay:   c.BillingDay,
			Amount:       c.TicketAmount,
			Currency:     c.Currency,
			ChargeDate:   chargeDate,
		})
	}
	return charges, nil
}

// Report builds the monthly summary for the given period. Expected
// revenue is the MRR of currently active clients; collected and
// expenses come from the recorded rows of that month.
func (s *Service) Report(ctx context.Context, year, month int) (*MonthlyReport, error) {
	clients, err := s.clients.ListActiveClients(ctx)
	if err != nil {
		return nil, err
	}

	expected := decimal.Zero
	for _, c := range clients {
		expected = expected.Add(c.TicketAmount)
	}

	collected, err := s.payments.CollectedTotalForPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}

	spent, err := s.expenses.TotalForPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}

	return &MonthlyReport{
		Period:          billing.Period{Year: year, Month: month},
		ExpectedAmount:  expected,
		CollectedAmount: collected,
		ExpensesAmount:  spent,
		NetAmount:       collected.Sub(spent),
	}, nil
}
