package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ferchoitu/led1-billing/internal/domain"
)

func testClient(id string, billingDay int) domain.Client {
	return domain.Client{
		ID:            id,
		Name:          "Pizzería Don Mario",
		PhoneE164:     "+5491134567890",
		WhatsAppOptIn: true,
		Status:        domain.ClientStatusActive,
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		TicketAmount:  decimal.NewFromInt(150000),
		Currency:      "ARS",
		BillingDay:    billingDay,
	}
}

func paymentFor(clientID string, year, month int) domain.Payment {
	return domain.Payment{
		ID:          "pay-1",
		ClientID:    clientID,
		PeriodYear:  year,
		PeriodMonth: month,
		Amount:      decimal.NewFromInt(150000),
		PaidAt:      time.Date(year, time.Month(month), 2, 12, 0, 0, 0, time.UTC),
	}
}

func TestClassify(t *testing.T) {
	endJune10 := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	endJune20 := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		client   func() domain.Client
		payments []domain.Payment
		today    Date
		want     State
	}{
		{
			name:   "billing day matches today",
			client: func() domain.Client { return testClient("c1", 15) },
			today:  Date{2024, 6, 15},
			want:   StateDueToday,
		},
		{
			name:   "billing day passed without payment",
			client: func() domain.Client { return testClient("c1", 15) },
			today:  Date{2024, 6, 20},
			want:   StateOverdue,
		},
		{
			name:   "billing day still ahead",
			client: func() domain.Client { return testClient("c1", 15) },
			today:  Date{2024, 6, 10},
			want:   StateUpcoming,
		},
		{
			name:     "payment takes precedence over overdue date",
			client:   func() domain.Client { return testClient("c1", 15) },
			payments: []domain.Payment{paymentFor("c1", 2024, 6)},
			today:    Date{2024, 6, 20},
			want:     StatePaid,
		},
		{
			name:     "payment takes precedence over due today",
			client:   func() domain.Client { return testClient("c1", 15) },
			payments: []domain.Payment{paymentFor("c1", 2024, 6)},
			today:    Date{2024, 6, 15},
			want:     StatePaid,
		},
		{
			name: "paused client is inactive even on its billing day",
			client: func() domain.Client {
				c := testClient("c1", 15)
				c.Status = domain.ClientStatusPaused
				return c
			},
			today: Date{2024, 6, 15},
			want:  StateInactive,
		},
		{
			name: "ended client is inactive",
			client: func() domain.Client {
				c := testClient("c1", 15)
				c.Status = domain.ClientStatusEnded
				return c
			},
			today: Date{2024, 6, 10},
			want:  StateInactive,
		},
		{
			name: "end date in the past makes the client inactive",
			client: func() domain.Client {
				c := testClient("c1", 15)
				c.EndDate = &endJune10
				return c
			},
			today: Date{2024, 6, 15},
			want:  StateInactive,
		},
		{
			name: "end date today keeps the client billable",
			client: func() domain.Client {
				c := testClient("c1", 20)
				c.EndDate = &endJune20
				return c
			},
			today: Date{2024, 6, 20},
			want:  StateDueToday,
		},
		{
			name: "lifecycle check precedes payment check",
			client: func() domain.Client {
				c := testClient("c1", 15)
				c.Status = domain.ClientStatusPaused
				return c
			},
			payments: []domain.Payment{paymentFor("c1", 2024, 6)},
			today:    Date{2024, 6, 20},
			want:     StateInactive,
		},
		{
			name:     "another client's payment does not count",
			client:   func() domain.Client { return testClient("c1", 15) },
			payments: []domain.Payment{paymentFor("c2", 2024, 6)},
			today:    Date{2024, 6, 20},
			want:     StateOverdue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.client(), tt.payments, tt.today)
			if got != tt.want {
				t.Fatalf("expected state %q, got %q", tt.want, got)
			}

			// Classification is a pure function: repeating the call with
			// the same inputs must yield the same state.
			if again := Classify(tt.client(), tt.payments, tt.today); again != got {
				t.Fatalf("classification not idempotent: %q then %q", got, again)
			}
		})
	}
}

func TestClassifyAlwaysReturnsKnownState(t *testing.T) {
	known := map[State]bool{
		StateInactive: true,
		StatePaid:     true,
		StateDueToday: true,
		StateOverdue:  true,
		StateUpcoming: true,
	}

	for day := 1; day <= 28; day++ {
		for todayDay := 1; todayDay <= 28; todayDay++ {
			state := Classify(testClient("c1", day), nil, Date{2024, 6, todayDay})
			if !known[state] {
				t.Fatalf("unknown state %q for billing day %d, today %d", state, day, todayDay)
			}
		}
	}
}

func TestClassifyAll(t *testing.T) {
	clients := []domain.Client{testClient("c1", 15), testClient("c2", 20)}
	payments := []domain.Payment{paymentFor("c2", 2024, 6)}

	classified := ClassifyAll(clients, payments, Date{2024, 6, 15})
	if len(classified) != 2 {
		t.Fatalf("expected 2 classified clients, got %d", len(classified))
	}
	if classified[0].State != StateDueToday {
		t.Fatalf("expected c1 due_today, got %q", classified[0].State)
	}
	if classified[1].State != StatePaid {
		t.Fatalf("expected c2 paid, got %q", classified[1].State)
	}
}
