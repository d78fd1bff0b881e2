package billing

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func classifiedWithAmount(id string, amount int64, state State) ClassifiedClient {
	c := testClient(id, 15)
	c.TicketAmount = decimal.NewFromInt(amount)
	return ClassifiedClient{Client: c, State: state}
}

func TestAggregate(t *testing.T) {
	classified := []ClassifiedClient{
		classifiedWithAmount("c1", 150000, StateDueToday),
		classifiedWithAmount("c2", 180000, StateOverdue),
		classifiedWithAmount("c3", 90000, StatePaid),
		classifiedWithAmount("c4", 120000, StateUpcoming),
		classifiedWithAmount("c5", 500000, StateInactive),
	}

	kpis := Aggregate(classified)

	if kpis.ActiveClientsCount != 4 {
		t.Fatalf("expected 4 active clients, got %d", kpis.ActiveClientsCount)
	}
	if !kpis.MRRAmount.Equal(decimal.NewFromInt(540000)) {
		t.Fatalf("expected MRR 540000, got %s", kpis.MRRAmount)
	}
	if kpis.ToCollectTodayCount != 1 || !kpis.ToCollectTodayAmount.Equal(decimal.NewFromInt(150000)) {
		t.Fatalf("unexpected due-today bucket: count=%d amount=%s", kpis.ToCollectTodayCount, kpis.ToCollectTodayAmount)
	}
	if kpis.OverdueCount != 1 || !kpis.OverdueAmount.Equal(decimal.NewFromInt(180000)) {
		t.Fatalf("unexpected overdue bucket: count=%d amount=%s", kpis.OverdueCount, kpis.OverdueAmount)
	}
}

func TestAggregateTwoClientScenario(t *testing.T) {
	kpis := Aggregate([]ClassifiedClient{
		classifiedWithAmount("c1", 150000, StateDueToday),
		classifiedWithAmount("c2", 180000, StateOverdue),
	})

	if !kpis.MRRAmount.Equal(decimal.NewFromInt(330000)) {
		t.Fatalf("expected MRR 330000, got %s", kpis.MRRAmount)
	}
	if !kpis.ToCollectTodayAmount.Equal(decimal.NewFromInt(150000)) {
		t.Fatalf("expected to collect 150000, got %s", kpis.ToCollectTodayAmount)
	}
	if !kpis.OverdueAmount.Equal(decimal.NewFromInt(180000)) {
		t.Fatalf("expected overdue 180000, got %s", kpis.OverdueAmount)
	}
	if kpis.ActiveClientsCount != 2 {
		t.Fatalf("expected 2 active clients, got %d", kpis.ActiveClientsCount)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	classified := []ClassifiedClient{
		classifiedWithAmount("c1", 150000, StateDueToday),
		classifiedWithAmount("c2", 180000, StateOverdue),
		classifiedWithAmount("c3", 90000, StatePaid),
		classifiedWithAmount("c4", 120000, StateUpcoming),
		classifiedWithAmount("c5", 70000, StateOverdue),
		classifiedWithAmount("c6", 45000, StateInactive),
	}
	want := Aggregate(classified)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]ClassifiedClient, len(classified))
		copy(shuffled, classified)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := Aggregate(shuffled)
		if got.ActiveClientsCount != want.ActiveClientsCount ||
			!got.MRRAmount.Equal(want.MRRAmount) ||
			got.ToCollectTodayCount != want.ToCollectTodayCount ||
			!got.ToCollectTodayAmount.Equal(want.ToCollectTodayAmount) ||
			got.OverdueCount != want.OverdueCount ||
			!got.OverdueAmount.Equal(want.OverdueAmount) {
			t.Fatalf("aggregation depends on input order: %+v vs %+v", got, want)
		}
	}
}

func TestAggregateEmptyAndNonNegative(t *testing.T) {
	kpis := Aggregate(nil)

	if kpis.ActiveClientsCount != 0 {
		t.Fatalf("expected 0 active clients, got %d", kpis.ActiveClientsCount)
	}
	if kpis.MRRAmount.IsNegative() || kpis.ToCollectTodayAmount.IsNegative() || kpis.OverdueAmount.IsNegative() {
		t.Fatalf("KPI amounts must never be negative: %+v", kpis)
	}
	if !kpis.MRRAmount.Equal(decimal.Zero) {
		t.Fatalf("expected zero MRR, got %s", kpis.MRRAmount)
	}
}
