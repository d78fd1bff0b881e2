/**
 * @description
 * Collection aggregator. Folds a classified client list into the
 * dashboard KPI summary in a single order-independent pass.
 */
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/ferchoitu/led1-billing/internal/domain"
)

// Aggregate computes the collection KPIs over classified clients.
// Inactive clients contribute nothing; every other state counts toward
// the active client total and MRR, while due-today and overdue clients
// additionally feed their collection buckets.
func Aggregate(classified []ClassifiedClient) domain.KPIs {
	kpis := domain.KPIs{
		MRRAmount:            decimal.Zero,
		ToCollectTodayAmount: decimal.Zero,
		OverdueAmount:        decimal.Zero,
	}

	for _, cc := range classified {
		if cc.State == StateInactive {
			continue
		}

		kpis.ActiveClientsCount++
		kpis.MRRAmount = kpis.MRRAmount.Add(cc.Client.TicketAmount)

		switch cc.State {
		case StateDueToday:
			kpis.ToCollectTodayCount++
			kpis.ToCollectTodayAmount = kpis.ToCollectTodayAmount.Add(cc.Client.TicketAmount)
		case StateOverdue:
			kpis.OverdueCount++
			kpis.OverdueAmount = kpis.OverdueAmount.Add(cc.Client.TicketAmount)
		}
	}

	return kpis
}
