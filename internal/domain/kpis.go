/**
 * @description
 * Dashboard KPI summary produced by folding the classified client list.
 */
package domain

import "github.com/shopspring/decimal"

// KPIs are the collection summary figures shown on the dashboard.
// MRRAmount reflects contracted revenue across all active clients,
// regardless of whether they have paid the current period yet.
type KPIs struct {
	ActiveClientsCount   int             `json:"active_clients_count"`
	MRRAmount            decimal.Decimal `json:"mrr_amount"`
	ToCollectTodayCount  int             `json:"to_collect_today_count"`
	ToCollectTodayAmount decimal.Decimal `json:"to_collect_today_amount"`
	OverdueCount         int             `json:"overdue_count"`
	OverdueAmount        decimal.Decimal `json:"overdue_amount"`
}
